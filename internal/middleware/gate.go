package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-vote-api/internal/dto"
	"github.com/noah-isme/sma-vote-api/pkg/response"
)

// Headers carrying the shared secrets.
const (
	HeaderAdminCode    = "x-admin-code"
	HeaderVotePassword = "x-vote-password"
)

// maxPeekBytes bounds how much of a JSON body is buffered to look for admin_code.
const maxPeekBytes = 1 << 20

type adminAuthorizer interface {
	AuthorizeAdmin(ctx context.Context, provided string) error
}

type voterAuthorizer interface {
	AuthorizeVoter(ctx context.Context, provided string) error
}

// AdminGate rejects requests whose admin code does not match the stored one. With
// allowBody the code may also come from a JSON body field admin_code; the body stays
// readable for the handler. The gates never call c.Next so they can run inside the
// dispatcher's handler chains as well as gin's.
func AdminGate(auth adminAuthorizer, allowBody bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		code := c.GetHeader(HeaderAdminCode)
		if code == "" && allowBody {
			code = peekAdminCode(c)
		}
		if err := auth.AuthorizeAdmin(c.Request.Context(), code); err != nil {
			response.Error(c, err)
			c.Abort()
		}
	}
}

// VoterGate enforces the optional terminal password.
func VoterGate(auth voterAuthorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := auth.AuthorizeVoter(c.Request.Context(), c.GetHeader(HeaderVotePassword)); err != nil {
			response.Error(c, err)
			c.Abort()
		}
	}
}

func peekAdminCode(c *gin.Context) string {
	if c.Request.Body == nil || strings.HasPrefix(c.ContentType(), "multipart/") {
		return ""
	}
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxPeekBytes))
	if err != nil {
		return ""
	}
	c.Request.Body = io.NopCloser(io.MultiReader(bytes.NewReader(body), c.Request.Body))

	var payload dto.AdminCodeBody
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.AdminCode
}
