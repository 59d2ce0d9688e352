package router

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRateLimitVerdict(t *testing.T) {
	loginRule := RateLimitRule{
		Prefix:        "om:rate:login",
		WindowSeconds: 60,
		MaxRequests:   5,
		BlockSeconds:  300,
		Message:       "登录尝试过于频繁",
	}

	// 未超限不拦截
	if limited, _ := rateLimitVerdict(loginRule, 5, 42); limited {
		t.Fatalf("count at limit should pass")
	}

	// 超限后脚本将 TTL 重置为封禁窗口，提示按封禁窗口计算
	limited, msg := rateLimitVerdict(loginRule, 6, 300)
	if !limited {
		t.Fatalf("count beyond limit should be blocked")
	}
	if !strings.Contains(msg, "登录尝试过于频繁") || !strings.Contains(msg, "300 秒") {
		t.Fatalf("message should carry rule text and block window, got %q", msg)
	}

	// TTL 缺失时回落到统计窗口
	_, msg = rateLimitVerdict(loginRule, 6, 0)
	if !strings.Contains(msg, "60 秒") {
		t.Fatalf("missing ttl should fall back to window seconds, got %q", msg)
	}

	// 无自定义文案时使用默认提示，且等待时长至少 1 秒
	_, msg = rateLimitVerdict(RateLimitRule{MaxRequests: 1}, 2, 0)
	if !strings.Contains(msg, "请求过于频繁") || !strings.Contains(msg, "1 秒") {
		t.Fatalf("default message with 1s floor expected, got %q", msg)
	}
}

func TestRateLimitScriptArmsBlockWindow(t *testing.T) {
	// 封禁窗口由脚本在超限时对同一 key 重新 EXPIRE 实现
	script := rateLimitScript.Hash()
	if script == "" {
		t.Fatalf("rate limit script should be loaded")
	}
	for _, fragment := range []string{"INCR", "EXPIRE", "ARGV[2]", "ARGV[3]", "TTL"} {
		if !strings.Contains(rateLimitScriptBody, fragment) {
			t.Fatalf("script should contain %s", fragment)
		}
	}
}

func TestKeyByIPAndJSONField(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"email":" Shopper@OpenMart.Dev "}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Request.RemoteAddr = "10.0.0.9:40000"

	key := KeyByIPAndJSONField("email")(c)
	if key != "shopper@openmart.dev|10.0.0.9" {
		t.Fatalf("key want shopper@openmart.dev|10.0.0.9 got %s", key)
	}

	// 读取字段后必须还原请求体，否则后续 ShouldBindJSON 拿不到数据
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		t.Fatalf("read body after key extraction failed: %v", err)
	}
	if !strings.Contains(string(body), "Shopper@OpenMart.Dev") {
		t.Fatalf("request body should be restored after reading field")
	}
}

func TestKeyByIPAndJSONFieldFallsBackToIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name string
		body string
	}{
		{name: "empty body", body: ""},
		{name: "field missing", body: `{"password":"x"}`},
		{name: "field not string", body: `{"email":42}`},
		{name: "invalid json", body: `{"email":`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(tc.body))
			c.Request.RemoteAddr = "10.0.0.9:40000"

			if key := KeyByIPAndJSONField("email")(c); key != "10.0.0.9" {
				t.Fatalf("key should fall back to client ip, got %s", key)
			}
		})
	}
}

func TestRateLimitMiddlewarePassThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name string
		rule RateLimitRule
	}{
		{name: "no redis client", rule: RateLimitRule{WindowSeconds: 60, MaxRequests: 1}},
		{name: "zero window", rule: RateLimitRule{WindowSeconds: 0, MaxRequests: 1}},
		{name: "zero max requests", rule: RateLimitRule{WindowSeconds: 60, MaxRequests: 0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.Use(RateLimitMiddleware(nil, tc.rule, KeyByIP))
			r.GET("/ping", func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"ok": true})
			})

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

			if w.Code != http.StatusOK {
				t.Fatalf("status want 200 got %d", w.Code)
			}
			if !strings.Contains(w.Body.String(), `"ok":true`) {
				t.Fatalf("expected handler response body, got %s", w.Body.String())
			}
		})
	}
}

func TestRedisKeyPrefixFallback(t *testing.T) {
	if got := redisKeyPrefix("  "); got != "om" {
		t.Fatalf("blank prefix should fall back to om, got %q", got)
	}
	if got := redisKeyPrefix("shop"); got != "shop" {
		t.Fatalf("configured prefix should win, got %q", got)
	}
}

func TestToInt64(t *testing.T) {
	cases := []struct {
		name  string
		input interface{}
		want  int64
		ok    bool
	}{
		{name: "int64", input: int64(10), want: 10, ok: true},
		{name: "int", input: int(11), want: 11, ok: true},
		{name: "uint8", input: uint8(12), want: 12, ok: true},
		{name: "float64", input: float64(13.9), want: 13, ok: true},
		{name: "string", input: "bad", want: 0, ok: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := toInt64(tc.input)
			if ok != tc.ok {
				t.Fatalf("ok want %v got %v", tc.ok, ok)
			}
			if got != tc.want {
				t.Fatalf("value want %d got %d", tc.want, got)
			}
		})
	}
}
