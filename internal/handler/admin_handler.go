package handler

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	sessionIDKey      = "session_id"
	currentSessionKey = "__admin_session"
)

type loginPayload struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login 校验账号密码并在 cookie 中记录会话 ID
func (a *API) Login(c *gin.Context) {
	var payload loginPayload
	if !bindJSON(c, &payload, "username and password are required") {
		return
	}

	record, err := a.sessions.Login(payload.Username, payload.Password)
	if err != nil {
		respondServiceError(c, err, "login failed")
		return
	}

	session := sessions.Default(c)
	session.Set(sessionIDKey, record.ID)
	if err := session.Save(); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to save session")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"username":  record.Username,
		"expiresAt": record.ExpiresAt,
	})
}

// Logout 注销当前会话并清理 cookie
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	if id, ok := session.Get(sessionIDKey).(string); ok {
		if err := a.sessions.Logout(id); err != nil {
			c.Error(err)
		}
	}
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	_ = session.Save()

	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// AuthRequired 拒绝未登录或会话已过期的请求
func (a *API) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		id, _ := session.Get(sessionIDKey).(string)

		record, err := a.sessions.Validate(id)
		if err != nil {
			respondServiceError(c, err, "failed to verify session")
			c.Abort()
			return
		}

		c.Set(currentSessionKey, record)
		c.Next()
	}
}
