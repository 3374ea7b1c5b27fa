package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"sixthsoul_bff/client"
	"sixthsoul_bff/constants"
	"sixthsoul_bff/middleware"
	"sixthsoul_bff/model"
	"sixthsoul_bff/session"
	"sixthsoul_bff/utils"
)

// Login đăng nhập qua API và lưu token vào phiên dưới scope tương ứng
func (h *Handler) Login(scope client.Scope) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, ok := c.Locals("input").(model.LoginInput)
		if !ok {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
		}

		login := h.API.Login
		if scope == client.ScopeAdmin {
			login = h.API.AdminLogin
		}
		resp, err := login(c.UserContext(), input)
		if err != nil {
			if client.IsStatus(err, fiber.StatusUnauthorized) || client.IsStatus(err, fiber.StatusBadRequest) {
				return utils.ErrorResponse(c, fiber.StatusUnauthorized, client.ServerMessage(err, constants.LOGIN_FAILED), err)
			}
			return h.fail(c, err, constants.LOGIN_FAILED)
		}

		// luôn cấp id phiên mới khi đăng nhập, scope còn lại được giữ
		sess := h.Sessions.New()
		if old := middleware.Current(c); old != nil {
			sess.Set(otherScope(scope), old.Blob(otherScope(scope)))
			if err := h.Sessions.Delete(c.UserContext(), old.ID); err != nil {
				log.Warnf("Không xoá được phiên cũ %s: %v", old.ID, err)
			}
		}
		sess.Set(scope, &session.Blob{
			AccessToken:  resp.AccessToken,
			RefreshToken: resp.RefreshToken,
			User:         resp.User,
		})
		if err := h.saveSession(c, sess); err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}

		return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
			"user": resp.User,
			"next": session.SafeNext(input.Next, session.HomePath(scope)),
		})
	}
}

func otherScope(scope client.Scope) client.Scope {
	if scope == client.ScopeAdmin {
		return client.ScopeCustomer
	}
	return client.ScopeAdmin
}

func (h *Handler) saveSession(c *fiber.Ctx, sess *session.Session) error {
	if err := h.Sessions.Save(c.UserContext(), sess); err != nil {
		return err
	}
	token, err := h.Signer.Sign(sess.ID)
	if err != nil {
		return err
	}
	c.Cookie(&fiber.Cookie{
		Name:     session.CookieName,
		Value:    token,
		HTTPOnly: true,
		Secure:   h.SecureCookie,
		SameSite: "Lax",
		Path:     "/",
		Expires:  time.Now().Add(h.Signer.TTL()),
	})
	return nil
}

// Logout chỉ xoá scope được yêu cầu; phiên rỗng thì xoá hẳn cookie
func (h *Handler) Logout(scope client.Scope) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := middleware.Current(c)
		if sess == nil {
			return utils.SuccessResponse(c, fiber.StatusOK, constants.LOGOUT_SUCCESS)
		}

		sess.Set(scope, nil)
		ctx := c.UserContext()
		if sess.Empty() {
			if err := h.Sessions.Delete(ctx, sess.ID); err != nil {
				return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
			}
			c.ClearCookie(session.CookieName)
		} else if err := h.Sessions.Save(ctx, sess); err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
		return utils.SuccessResponse(c, fiber.StatusOK, constants.LOGOUT_SUCCESS)
	}
}

// Me trả về người dùng đã lưu trong phiên, không gọi API
func (h *Handler) Me(scope client.Scope) fiber.Handler {
	return func(c *fiber.Ctx) error {
		b := middleware.Current(c).Blob(scope)
		if b == nil {
			return h.unauthorized(c, scope)
		}
		return utils.SuccessResponse(c, fiber.StatusOK, b.User)
	}
}
