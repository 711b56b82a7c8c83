package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeIPv4(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain ipv4", "203.113.131.1", "203.113.131.1"},
		{"loopback", "127.0.0.1", "127.0.0.1"},
		{"ipv6 loopback", "::1", "127.0.0.1"},
		{"ipv6 address", "2001:db8::1", "127.0.0.1"},
		{"ipv4 mapped ipv6", "::ffff:192.168.1.10", "192.168.1.10"},
		{"garbage", "not-an-ip", "127.0.0.1"},
		{"empty", "", "127.0.0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeIPv4(tt.in))
		})
	}
}

func TestExtractClientIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newCtx := func() *gin.Context {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", "/", nil)
		c.Request.RemoteAddr = "10.0.0.8:51234"
		return c
	}

	t.Run("x-forwarded-for wins", func(t *testing.T) {
		c := newCtx()
		c.Request.Header.Set("X-Forwarded-For", "203.113.131.1, 10.0.0.2")
		assert.Equal(t, "203.113.131.1", ExtractClientIP(c))
	})

	t.Run("x-real-ip fallback", func(t *testing.T) {
		c := newCtx()
		c.Request.Header.Set("X-Real-IP", "172.16.5.4")
		assert.Equal(t, "172.16.5.4", ExtractClientIP(c))
	})

	t.Run("remote addr fallback", func(t *testing.T) {
		c := newCtx()
		assert.Equal(t, "10.0.0.8", ExtractClientIP(c))
	})

	t.Run("invalid forwarded header ignored", func(t *testing.T) {
		c := newCtx()
		c.Request.Header.Set("X-Forwarded-For", "banana")
		assert.Equal(t, "10.0.0.8", ExtractClientIP(c))
	})
}

func TestIsPrivateIP(t *testing.T) {
	assert.True(t, IsPrivateIP("192.168.1.1"))
	assert.True(t, IsPrivateIP("10.20.30.40"))
	assert.True(t, IsPrivateIP("127.0.0.1"))
	assert.False(t, IsPrivateIP("203.113.131.1"))
	assert.False(t, IsPrivateIP("not-an-ip"))
}
