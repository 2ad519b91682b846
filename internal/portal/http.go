package portal

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/nao1215/planbridge/pkg/httpclient"
)

// HTTPFactory はポータルのJSON APIと通信するClientを生成する。
type HTTPFactory struct {
	// baseURL はポータルAPIのベースURL。
	baseURL string
	// timeout は1リクエストあたりのタイムアウト。
	timeout time.Duration
}

// NewHTTPFactory は新しいHTTPFactoryを生成する。
func NewHTTPFactory(baseURL string, timeout time.Duration) *HTTPFactory {
	return &HTTPFactory{baseURL: baseURL, timeout: timeout}
}

// NewFromCredentials は資格情報に紐づくClientを生成する。
func (f *HTTPFactory) NewFromCredentials(username, password, schoolID string) Client {
	return &httpClient{
		http:        httpclient.New(f.baseURL, httpclient.WithTimeout(f.timeout)),
		username:    username,
		password:    password,
		schoolID:    schoolID,
		interactive: false,
	}
}

// NewFromSession はセッションIDをCookieに設定し、ログイン済みとして扱うClientを生成する。
func (f *HTTPFactory) NewFromSession(sessionID, schoolID string) Client {
	c := &httpClient{
		http:     httpclient.New(f.baseURL, httpclient.WithTimeout(f.timeout)),
		schoolID: schoolID,
		loggedIn: true,
	}
	c.http.SetCookie(SessionCookie, sessionID)
	return c
}

// httpClient はポータルのJSON APIに対するClient実装。
type httpClient struct {
	http        *httpclient.Client
	username    string
	password    string
	schoolID    string
	interactive bool
	loggedIn    bool
}

// loginRequest はログインAPIのリクエストボディ。
type loginRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	SchoolID    string `json:"school_id"`
	Interactive bool   `json:"interactive"`
}

// loginResponse はログインAPIのレスポンスボディ。
// セッションIDは通常Cookieで返るが、ボディで返すポータルもある。
type loginResponse struct {
	SID string `json:"sid"`
}

// Authenticate はポータルにログインし、セッションIDを返す。
func (c *httpClient) Authenticate(ctx context.Context) (string, error) {
	req := loginRequest{
		Username:    c.username,
		Password:    c.password,
		SchoolID:    c.schoolID,
		Interactive: c.interactive,
	}

	var resp loginResponse
	if err := c.http.PostJSON(ctx, "/login", req, &resp); err != nil {
		return "", fmt.Errorf("ポータルへのログインに失敗: %w", err)
	}

	sid := c.http.Cookie(SessionCookie)
	if sid == "" && IsValidSessionID(resp.SID) {
		sid = resp.SID
		c.http.SetCookie(SessionCookie, sid)
	}
	if sid == "" {
		return "", ErrNoSession
	}

	c.loggedIn = true
	return sid, nil
}

// PlanDates は代替計画が存在する日付の一覧を取得する。
func (c *httpClient) PlanDates(ctx context.Context) ([]string, error) {
	if !c.loggedIn {
		return nil, ErrNotLoggedIn
	}

	q := url.Values{}
	q.Set("school_id", c.schoolID)

	var dates []string
	if err := c.http.GetJSON(ctx, "/vplan/dates?"+q.Encode(), &dates); err != nil {
		return nil, fmt.Errorf("代替計画の日付一覧の取得に失敗: %w", err)
	}
	return dates, nil
}

// Plan は指定日の代替計画を取得する。
func (c *httpClient) Plan(ctx context.Context, date string) ([]Entry, error) {
	if !c.loggedIn {
		return nil, ErrNotLoggedIn
	}

	q := url.Values{}
	q.Set("date", date)
	q.Set("school_id", c.schoolID)

	var entries []Entry
	if err := c.http.GetJSON(ctx, "/vplan?"+q.Encode(), &entries); err != nil {
		return nil, fmt.Errorf("代替計画の取得に失敗: date=%s: %w", date, err)
	}
	return entries, nil
}
