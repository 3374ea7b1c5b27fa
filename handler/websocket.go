package handler

import (
	"context"
	"errors"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"

	"sixthsoul_bff/client"
	"sixthsoul_bff/constants"
	"sixthsoul_bff/listing"
	"sixthsoul_bff/session"
)

// consoleCommand là tin nhắn trình duyệt gửi lên bàn điều khiển
type consoleCommand struct {
	Type   string          `json:"type"` // load, filter, page, select, selectAll, clearSelection, refetch, action
	Field  string          `json:"field"`
	Value  string          `json:"value"`
	Page   int             `json:"page"`
	ID     int64           `json:"id"`
	On     bool            `json:"on"`
	Action *listing.Action `json:"action"`
}

// consoleMessage là tin nhắn gửi xuống: snapshot sau mỗi thay đổi, result hoặc error cho từng lệnh
type consoleMessage struct {
	Type    string `json:"type"`
	Action  string `json:"action,omitempty"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// UpgradeConsole chỉ cho đi tiếp các request nâng cấp websocket
func UpgradeConsole(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// AdminConsole giữ một Controller cho mỗi kết nối; thay đổi từ nơi khác đến qua Redis kênh admin:<resource>
func (h *Handler) AdminConsole(conn *websocket.Conn) {
	def, ok := conn.Locals("resource").(listing.Definition)
	if !ok {
		conn.Close()
		return
	}
	sess, _ := conn.Locals("session").(*session.Session)

	ctx, cancel := context.WithCancel(context.Background())
	origin := uuid.NewString()
	console := def.NewConsole(ctx, h.API.WithTokens(sess))

	var (
		writeMu sync.Mutex
		closed  bool
	)
	send := func(msg consoleMessage) {
		writeMu.Lock()
		defer writeMu.Unlock()
		if closed {
			return
		}
		if err := conn.WriteJSON(msg); err != nil {
			log.Warnf("Lỗi gửi websocket %s: %v", def.ResourceName(), err)
		}
	}
	// conn được trả về pool ngay khi handler kết thúc, sau đó không được ghi nữa
	defer func() {
		writeMu.Lock()
		closed = true
		writeMu.Unlock()
		cancel()
		console.Close()
		console.Wait()
	}()
	console.OnSnapshot(func(s any) {
		send(consoleMessage{Type: "snapshot", Data: s})
	})

	if h.Redis != nil {
		pubsub := h.Redis.Subscribe(ctx, adminChannel(def.ResourceName()))
		defer pubsub.Close()
		go func() {
			for msg := range pubsub.Channel() {
				if msg.Payload != origin {
					console.Refetch()
				}
			}
		}()
	}

	console.Load()
	for {
		var cmd consoleCommand
		if err := conn.ReadJSON(&cmd); err != nil {
			return
		}
		reply, changed := dispatch(ctx, console, cmd)
		if changed && h.Redis != nil {
			if err := h.Redis.Publish(ctx, adminChannel(def.ResourceName()), origin).Err(); err != nil {
				log.Warnf("Không gửi được thông báo thay đổi %s: %v", def.ResourceName(), err)
			}
		}
		if reply != nil {
			send(*reply)
		}
	}
}

// dispatch áp một lệnh vào console. changed=true khi thao tác đã ghi dữ liệu lên API.
func dispatch(ctx context.Context, console listing.Console, cmd consoleCommand) (*consoleMessage, bool) {
	var err error
	switch cmd.Type {
	case "load":
		console.Load()
	case "filter":
		err = console.SetFilter(cmd.Field, cmd.Value)
	case "page":
		err = console.SetPage(cmd.Page)
	case "select":
		console.Select(cmd.ID, cmd.On)
	case "selectAll":
		console.SelectAll()
	case "clearSelection":
		console.ClearSelection()
	case "refetch":
		console.Refetch()
	case "action":
		if cmd.Action == nil {
			return &consoleMessage{Type: "error", Message: constants.UNKNOWN_ACTION}, false
		}
		result, err := console.Do(ctx, *cmd.Action)
		if err != nil {
			return &consoleMessage{Type: "error", Action: cmd.Action.Name, Message: actionMessage(err)}, false
		}
		if report, ok := result.(listing.BulkReport); ok && !report.OK() {
			return &consoleMessage{Type: "partial", Action: cmd.Action.Name, Message: report.Message(), Data: report}, true
		}
		return &consoleMessage{Type: "result", Action: cmd.Action.Name, Data: result}, true
	default:
		return &consoleMessage{Type: "error", Message: constants.UNKNOWN_ACTION}, false
	}
	if err != nil {
		return &consoleMessage{Type: "error", Message: actionMessage(err)}, false
	}
	return nil, false
}

func actionMessage(err error) string {
	var verrs validator.ValidationErrors
	switch {
	case errors.Is(err, listing.ErrConfirmationRequired):
		return constants.CONFIRMATION_REQUIRED
	case errors.Is(err, listing.ErrUnknownAction):
		return constants.UNKNOWN_ACTION
	case errors.Is(err, listing.ErrTransition):
		return constants.INVALID_STATUS_TRANSITION
	case errors.Is(err, listing.ErrInvalidFilter), errors.Is(err, listing.ErrUnknownField):
		return constants.INVALID_FILTER
	case errors.Is(err, listing.ErrInvalidPage), errors.As(err, &verrs):
		return constants.ERROR_INPUT
	case errors.Is(err, client.ErrNoToken), client.IsStatus(err, fiber.StatusUnauthorized):
		return constants.SESSION_INVALID
	}
	return client.Describe(err, constants.ERROR_UPDATE)
}
