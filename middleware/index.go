package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"sixthsoul_bff/client"
	"sixthsoul_bff/constants"
	"sixthsoul_bff/session"
	"sixthsoul_bff/utils"
)

// Session đọc cookie sid, nạp phiên từ Redis và gắn vào c.Locals("session").
// Cookie hỏng hoặc phiên đã hết hạn thì coi như khách chưa đăng nhập.
func Session(store *session.Store, signer *session.Signer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Cookies(session.CookieName)
		if raw == "" {
			return c.Next()
		}

		id, err := signer.Parse(raw)
		if err != nil {
			c.ClearCookie(session.CookieName)
			return c.Next()
		}

		sess, err := store.Get(c.UserContext(), id)
		if err != nil {
			if !errors.Is(err, session.ErrNotFound) {
				log.Errorf("Lỗi đọc phiên %s: %v", id, err)
			}
			c.ClearCookie(session.CookieName)
			return c.Next()
		}

		c.Locals("session", sess)
		return c.Next()
	}
}

// Current trả về phiên của request, nil nếu chưa đăng nhập
func Current(c *fiber.Ctx) *session.Session {
	sess, _ := c.Locals("session").(*session.Session)
	return sess
}

// PagePath là trang giao diện đang mở (header X-Page-Path), mặc định là URL của request
func PagePath(c *fiber.Ctx) string {
	if p := c.Get("X-Page-Path"); p != "" {
		return p
	}
	return c.OriginalURL()
}

// RequireScope chặn route khi phiên chưa có scope này; phản hồi kèm redirect về trang đăng nhập
func RequireScope(scope client.Scope) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if Current(c).Blob(scope) == nil {
			return utils.RedirectResponse(c, fiber.StatusUnauthorized, constants.NOT_LOGGED_IN, session.LoginPath(scope, PagePath(c)))
		}
		return c.Next()
	}
}
