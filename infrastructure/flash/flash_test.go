package flash

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prasetyowira/qrgen/constant"
)

func flashCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == constant.FlashCookieName {
			return c
		}
	}
	t.Fatalf("flash cookie not set")
	return nil
}

func TestStore_SetThenPop(t *testing.T) {
	store := NewStore("test-secret", false)

	rec := httptest.NewRecorder()
	require.NoError(t, store.Set(rec, Error(constant.NoticeEnterURL)))
	cookie := flashCookie(t, rec)
	assert.True(t, cookie.HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()

	notice := store.Pop(rec, req)

	require.NotNil(t, notice)
	assert.Equal(t, constant.LevelError, notice.Level)
	assert.Equal(t, constant.NoticeEnterURL, notice.Message)

	cleared := flashCookie(t, rec)
	assert.Equal(t, -1, cleared.MaxAge)
}

func TestStore_PopWithoutCookie(t *testing.T) {
	store := NewStore("test-secret", false)
	rec := httptest.NewRecorder()

	notice := store.Pop(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Nil(t, notice)
	assert.Empty(t, rec.Result().Cookies())
}

func TestStore_RejectsForeignSignature(t *testing.T) {
	other := NewStore("other-secret", false)
	rec := httptest.NewRecorder()
	require.NoError(t, other.Set(rec, Success("hello")))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(flashCookie(t, rec))

	notice := NewStore("test-secret", false).Pop(httptest.NewRecorder(), req)

	assert.Nil(t, notice)
}

func TestStore_RejectsGarbage(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: constant.FlashCookieName, Value: "not-a-token"})

	assert.Nil(t, NewStore("test-secret", false).Pop(httptest.NewRecorder(), req))
}

func TestStore_RejectsExpired(t *testing.T) {
	store := NewStore("test-secret", false)
	store.ttl = -time.Minute
	rec := httptest.NewRecorder()
	require.NoError(t, store.Set(rec, Success("stale")))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: constant.FlashCookieName, Value: flashCookie(t, rec).Value})

	assert.Nil(t, store.Pop(httptest.NewRecorder(), req))
}

func TestStore_Redirect(t *testing.T) {
	store := NewStore("test-secret", false)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/generate", nil)

	store.Redirect(rec, req, "/", Error(constant.NoticeFileNotFound))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.NotEmpty(t, flashCookie(t, rec).Value)
}
