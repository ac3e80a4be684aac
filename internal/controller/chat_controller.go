package controller

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	"realestate-buyer-be/internal/dto"
	"realestate-buyer-be/internal/pkg/logger"
	"realestate-buyer-be/internal/pkg/serverutils"
	"realestate-buyer-be/internal/service"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	History(ctx *fiber.Ctx) error
	SendMessage(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
	logger      logger.ILogger
}

func NewChatController(chatService service.IChatService, log logger.ILogger) IChatController {
	return &chatController{
		chatService: chatService,
		logger:      log,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat")
	h.Get(":sessionId/messages", c.History)
	h.Post(":sessionId/messages", c.SendMessage)
}

func (c *chatController) History(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("sessionId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid session id")
	}

	res, err := c.chatService.History(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse(res))
}

// SendMessage commits the user turn, then streams the assistant reply as
// server-sent events. Errors after the stream opens can only be reported
// in-band, the status line is already gone.
func (c *chatController) SendMessage(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("sessionId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid session id")
	}

	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	req.SessionId = id

	if apiErr := serverutils.ValidateRequest(req); apiErr != nil {
		return apiErr
	}

	turn, err := c.chatService.PrepareTurn(ctx.Context(), id, req.Content)
	if err != nil {
		return err
	}

	ctx.Set(fiber.HeaderContentType, "text/event-stream")
	ctx.Set(fiber.HeaderCacheControl, "no-cache")
	ctx.Set(fiber.HeaderConnection, "keep-alive")
	ctx.Set("X-Accel-Buffering", "no")

	ctx.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		// The request context dies with the handler, generation runs
		// detached and is not cancellable once issued.
		emit := func(token string) error {
			return writeStreamEvent(w, dto.ChatStreamEvent{Type: "token", Content: token})
		}

		msg, err := c.chatService.StreamReply(context.Background(), turn, emit)
		if err != nil {
			c.logger.Error("ChatController", "Reply stream aborted", map[string]interface{}{
				"session_id": turn.SessionId,
				"error":      err.Error(),
			})
			return
		}

		if err := writeStreamEvent(w, dto.ChatStreamEvent{Type: "done", MessageId: &msg.Id}); err != nil {
			c.logger.Warn("ChatController", "Failed to write done frame", map[string]interface{}{
				"session_id": turn.SessionId,
				"error":      err.Error(),
			})
		}
	}))

	return nil
}

func writeStreamEvent(w *bufio.Writer, event dto.ChatStreamEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
		return err
	}
	return w.Flush()
}
