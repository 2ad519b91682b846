package gateway

import (
	"context"
	"sync"
	"time"

	"github.com/nao1215/planbridge/internal/portal"
)

// fakePortal はテスト用のportal.Factory実装。
// 上流の応答を固定し、受け取った引数を記録する。
type fakePortal struct {
	// sid はAuthenticateが返すセッションID。
	sid string
	// authErr はAuthenticateが返すエラー。
	authErr error
	// validSID はセッションが必要な操作を受け付けるセッションID。空なら全て受け付ける。
	validSID string
	// dates はPlanDatesが返す日付一覧。
	dates []string
	// datesErr はPlanDatesが返すエラー。
	datesErr error
	// plans は日付ごとにPlanが返す代替計画。
	plans map[string][]portal.Entry
	// planErrs は日付ごとにPlanが返すエラー。
	planErrs map[string]error
	// delays は日付ごとにPlanの応答を遅らせる時間。
	delays map[string]time.Duration

	mu sync.Mutex
	// credentials はNewFromCredentialsに渡された引数。
	credentials [][3]string
	// sessions はNewFromSessionに渡された引数。
	sessions [][2]string
	// planDates はPlanに渡された日付。
	planDates []string
}

// NewFromCredentials は資格情報に紐づくfakeClientを生成する。
func (f *fakePortal) NewFromCredentials(username, password, schoolID string) portal.Client {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.credentials = append(f.credentials, [3]string{username, password, schoolID})
	return &fakeClient{portal: f}
}

// NewFromSession はセッションに紐づくfakeClientを生成する。
func (f *fakePortal) NewFromSession(sessionID, schoolID string) portal.Client {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions = append(f.sessions, [2]string{sessionID, schoolID})
	return &fakeClient{portal: f, sid: sessionID, loggedIn: true}
}

// recordedPlanDates はPlanに渡された日付のコピーを返す。
func (f *fakePortal) recordedPlanDates() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.planDates...)
}

// fakeClient はfakePortalの応答を返すportal.Client実装。
type fakeClient struct {
	portal   *fakePortal
	sid      string
	loggedIn bool
}

func (c *fakeClient) Authenticate(_ context.Context) (string, error) {
	if c.portal.authErr != nil {
		return "", c.portal.authErr
	}
	c.sid = c.portal.sid
	c.loggedIn = true
	return c.sid, nil
}

func (c *fakeClient) PlanDates(_ context.Context) ([]string, error) {
	if err := c.checkSession(); err != nil {
		return nil, err
	}
	if c.portal.datesErr != nil {
		return nil, c.portal.datesErr
	}
	return c.portal.dates, nil
}

func (c *fakeClient) Plan(_ context.Context, date string) ([]portal.Entry, error) {
	c.portal.mu.Lock()
	c.portal.planDates = append(c.portal.planDates, date)
	c.portal.mu.Unlock()

	if err := c.checkSession(); err != nil {
		return nil, err
	}
	if d, ok := c.portal.delays[date]; ok {
		time.Sleep(d)
	}
	if err, ok := c.portal.planErrs[date]; ok {
		return nil, err
	}
	return c.portal.plans[date], nil
}

// checkSession はセッションが受け付けられるかを判定する。
func (c *fakeClient) checkSession() error {
	if !c.loggedIn {
		return portal.ErrNotLoggedIn
	}
	if c.portal.validSID != "" && c.sid != c.portal.validSID {
		return errSessionExpired
	}
	return nil
}
