package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"topweb-backend/internal/domain"
	"topweb-backend/internal/repository"
)

type fakeClientsRepo struct {
	clients map[int]*domain.Client
	order   []int
}

func newFakeClientsRepo(clients ...*domain.Client) *fakeClientsRepo {
	repo := &fakeClientsRepo{clients: make(map[int]*domain.Client)}
	for _, c := range clients {
		repo.clients[c.ID] = c
		repo.order = append(repo.order, c.ID)
	}
	return repo
}

func (f *fakeClientsRepo) CreateClient(ctx context.Context, payload repository.NewClient) (*domain.Client, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeClientsRepo) GetClient(ctx context.Context, id int) (*domain.Client, error) {
	c, ok := f.clients[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return c, nil
}

func (f *fakeClientsRepo) ListClients(ctx context.Context) ([]*domain.Client, error) {
	var out []*domain.Client
	for _, id := range f.order {
		out = append(out, f.clients[id])
	}
	return out, nil
}

func (f *fakeClientsRepo) UpdateClient(ctx context.Context, id int, updates repository.ClientUpdate) (*domain.Client, error) {
	return nil, errors.New("not implemented")
}

type fakeReportsRepo struct {
	nextID     int
	created    []*domain.Report
	sent       map[int]time.Time
	failMarkID int
}

func newFakeReportsRepo() *fakeReportsRepo {
	return &fakeReportsRepo{sent: make(map[int]time.Time)}
}

func (f *fakeReportsRepo) CreateReport(ctx context.Context, payload repository.NewReport) (*domain.Report, error) {
	f.nextID++
	r := &domain.Report{
		ID:          f.nextID,
		ClientID:    payload.ClientID,
		ServiceType: payload.ServiceType,
		ReportMonth: payload.ReportMonth,
		Data:        payload.Data,
		CreatedAt:   time.Now(),
	}
	f.created = append(f.created, r)
	return r, nil
}

func (f *fakeReportsRepo) GetReportsByClient(ctx context.Context, clientID int) ([]*domain.Report, error) {
	var out []*domain.Report
	for _, r := range f.created {
		if r.ClientID == clientID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReportsRepo) GetReportsByMonth(ctx context.Context, month string) ([]*domain.Report, error) {
	var out []*domain.Report
	for _, r := range f.created {
		if r.ReportMonth == month {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReportsRepo) MarkEmailSent(ctx context.Context, id int, sentAt time.Time) error {
	if f.failMarkID != 0 && id == f.failMarkID {
		return errors.New("connection reset")
	}
	for _, r := range f.created {
		if r.ID == id {
			r.EmailSent = true
			t := sentAt
			r.EmailSentAt = &t
			f.sent[id] = sentAt
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeMailer struct {
	sent    []string // recipient addresses, in order
	subject []string
	body    []string
	failFor map[string]error
}

func (f *fakeMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	if err, ok := f.failFor[to]; ok {
		return err
	}
	f.sent = append(f.sent, to)
	f.subject = append(f.subject, subject)
	f.body = append(f.body, htmlBody)
	return nil
}

type fakeMetrics struct{ err error }

func (f *fakeMetrics) Fetch(ctx context.Context, client *domain.Client, serviceType, month string) (*ServicePayload, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &ServicePayload{
		Metrics:         map[string]int{"value": 1},
		Summary:         map[string]string{"note": "ok"},
		Recommendations: []string{"keep going"},
	}, nil
}

type fakeGMB struct {
	calls []int
	err   error
}

func (f *fakeGMB) GenerateMonthlyReport(ctx context.Context, clientID int, month string) error {
	if f.err != nil {
		return f.err
	}
	f.calls = append(f.calls, clientID)
	return nil
}

func newTestReportService(clients *fakeClientsRepo, reports *fakeReportsRepo, mailer *fakeMailer) (*ReportService, *fakeGMB) {
	gmb := &fakeGMB{}
	svc := NewReportService(clients, reports, &fakeMetrics{}, gmb, mailer,
		"https://topwebdirectories.com.au/dashboard", zap.NewNop())
	return svc, gmb
}

func TestGenerateClientReports_OneRowPerSubscribedService(t *testing.T) {
	clients := newFakeClientsRepo(&domain.Client{
		ID:           1,
		BusinessName: "Adelaide Plumbing",
		ContactEmail: "owner@adelaideplumbing.com.au",
		Services:     []string{"seo", "ppc"},
		Status:       "active",
	})
	reports := newFakeReportsRepo()
	svc, gmb := newTestReportService(clients, reports, &fakeMailer{})

	err := svc.GenerateClientReports(context.Background(), 1, "2025-07")

	require.NoError(t, err)
	require.Len(t, reports.created, 2)
	assert.Equal(t, "seo", reports.created[0].ServiceType)
	assert.Equal(t, "ppc", reports.created[1].ServiceType)
	assert.Empty(t, gmb.calls)

	var data domain.ReportData
	require.NoError(t, json.Unmarshal(reports.created[0].Data, &data))
	assert.Equal(t, "Adelaide Plumbing", data.BusinessName)
	assert.Equal(t, "2025-07", data.ReportMonth)
	assert.NotEmpty(t, data.Recommendations)
}

func TestGenerateClientReports_ListingReportRunsFirst(t *testing.T) {
	clients := newFakeClientsRepo(&domain.Client{
		ID:           1,
		BusinessName: "Cafe Flinders",
		ContactEmail: "hello@cafeflinders.com.au",
		GMBListingID: "gmb-123",
		Services:     []string{"gmb", "seo"},
		Status:       "active",
	})
	reports := newFakeReportsRepo()
	svc, gmb := newTestReportService(clients, reports, &fakeMailer{})

	require.NoError(t, svc.GenerateClientReports(context.Background(), 1, "2025-07"))

	assert.Equal(t, []int{1}, gmb.calls)
	require.Len(t, reports.created, 1)
	assert.Equal(t, "seo", reports.created[0].ServiceType)
}

func TestGenerateClientReports_ListingWithoutSubscriptionSkipsGMB(t *testing.T) {
	clients := newFakeClientsRepo(&domain.Client{
		ID:           1,
		BusinessName: "Adelaide Plumbing",
		ContactEmail: "owner@adelaideplumbing.com.au",
		GMBListingID: "gmb-999",
		Services:     []string{"seo", "ppc"},
		Status:       "active",
	})
	reports := newFakeReportsRepo()
	svc, gmb := newTestReportService(clients, reports, &fakeMailer{})

	require.NoError(t, svc.GenerateClientReports(context.Background(), 1, "2025-07"))

	assert.Empty(t, gmb.calls)
	for _, r := range reports.created {
		assert.NotEqual(t, "gmb", r.ServiceType)
	}
}

func TestGenerateClientReports_SubscriptionWithoutListingSkipsGMB(t *testing.T) {
	clients := newFakeClientsRepo(&domain.Client{
		ID:           1,
		BusinessName: "No Listing Yet",
		ContactEmail: "owner@example.com",
		Services:     []string{"gmb", "seo"},
		Status:       "active",
	})
	reports := newFakeReportsRepo()
	svc, gmb := newTestReportService(clients, reports, &fakeMailer{})

	require.NoError(t, svc.GenerateClientReports(context.Background(), 1, "2025-07"))

	assert.Empty(t, gmb.calls)
	require.Len(t, reports.created, 1)
	assert.Equal(t, "seo", reports.created[0].ServiceType)
}

func TestGenerateClientReports_UnknownClientIsNoOp(t *testing.T) {
	svc, _ := newTestReportService(newFakeClientsRepo(), newFakeReportsRepo(), &fakeMailer{})

	err := svc.GenerateClientReports(context.Background(), 999, "2025-07")

	assert.NoError(t, err)
}

func TestGenerateAllReports_SkipsInactiveClients(t *testing.T) {
	clients := newFakeClientsRepo(
		&domain.Client{ID: 1, BusinessName: "Active Co", Services: []string{"seo"}, Status: "active"},
		&domain.Client{ID: 2, BusinessName: "Paused Co", Services: []string{"seo"}, Status: "paused"},
		&domain.Client{ID: 3, BusinessName: "Gone Co", Services: []string{"seo"}, Status: "cancelled"},
	)
	reports := newFakeReportsRepo()
	svc, _ := newTestReportService(clients, reports, &fakeMailer{})

	require.NoError(t, svc.GenerateAllReports(context.Background(), "2025-07"))

	require.Len(t, reports.created, 1)
	assert.Equal(t, 1, reports.created[0].ClientID)
}

func TestGenerateAllReports_DuplicateRunAddsRows(t *testing.T) {
	clients := newFakeClientsRepo(&domain.Client{
		ID: 1, BusinessName: "Active Co", Services: []string{"seo"}, Status: "active",
	})
	reports := newFakeReportsRepo()
	svc, _ := newTestReportService(clients, reports, &fakeMailer{})

	require.NoError(t, svc.GenerateAllReports(context.Background(), "2025-07"))
	require.NoError(t, svc.GenerateAllReports(context.Background(), "2025-07"))

	assert.Len(t, reports.created, 2)
}

func TestSendMonthlyReports_GroupsPerClient(t *testing.T) {
	clients := newFakeClientsRepo(
		&domain.Client{ID: 1, BusinessName: "Alpha", ContactEmail: "alpha@example.com", Services: []string{"seo", "ppc"}, Status: "active"},
		&domain.Client{ID: 2, BusinessName: "Beta", ContactEmail: "beta@example.com", Services: []string{"social"}, Status: "active"},
	)
	reports := newFakeReportsRepo()
	mailer := &fakeMailer{}
	svc, _ := newTestReportService(clients, reports, mailer)

	require.NoError(t, svc.GenerateAllReports(context.Background(), "2025-07"))
	require.NoError(t, svc.SendMonthlyReports(context.Background(), "2025-07"))

	// One digest per client, not per report.
	require.Len(t, mailer.sent, 2)
	assert.Equal(t, []string{"alpha@example.com", "beta@example.com"}, mailer.sent)
	assert.Contains(t, mailer.subject[0], "Alpha - Monthly Digital Marketing Report (July 2025)")
	assert.Contains(t, mailer.body[0], "SEO Performance")
	assert.Contains(t, mailer.body[0], "PPC Campaigns")
	assert.Contains(t, mailer.body[0], "topwebdirectories.com.au/dashboard")

	for _, r := range reports.created {
		assert.True(t, r.EmailSent, "report %d should be marked sent", r.ID)
	}
}

func TestSendMonthlyReports_FailedClientDoesNotBlockOthers(t *testing.T) {
	clients := newFakeClientsRepo(
		&domain.Client{ID: 1, BusinessName: "Alpha", ContactEmail: "alpha@example.com", Services: []string{"seo"}, Status: "active"},
		&domain.Client{ID: 2, BusinessName: "Beta", ContactEmail: "beta@example.com", Services: []string{"seo"}, Status: "active"},
	)
	reports := newFakeReportsRepo()
	mailer := &fakeMailer{failFor: map[string]error{"alpha@example.com": errors.New("smtp refused")}}
	svc, _ := newTestReportService(clients, reports, mailer)

	require.NoError(t, svc.GenerateAllReports(context.Background(), "2025-07"))
	err := svc.SendMonthlyReports(context.Background(), "2025-07")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "smtp refused")

	// Beta still got its digest and its report is marked.
	assert.Equal(t, []string{"beta@example.com"}, mailer.sent)
	for _, r := range reports.created {
		if r.ClientID == 1 {
			assert.False(t, r.EmailSent)
		} else {
			assert.True(t, r.EmailSent)
		}
	}
}

func TestSendMonthlyReports_MarkFailurePropagates(t *testing.T) {
	clients := newFakeClientsRepo(
		&domain.Client{ID: 1, BusinessName: "Alpha", ContactEmail: "alpha@example.com", Services: []string{"seo", "ppc"}, Status: "active"},
	)
	reports := newFakeReportsRepo()
	mailer := &fakeMailer{}
	svc, _ := newTestReportService(clients, reports, mailer)

	require.NoError(t, svc.GenerateAllReports(context.Background(), "2025-07"))
	reports.failMarkID = reports.created[0].ID

	err := svc.SendMonthlyReports(context.Background(), "2025-07")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to mark report")
	// The email itself still went out and the other row was still marked.
	assert.Equal(t, []string{"alpha@example.com"}, mailer.sent)
	assert.False(t, reports.created[0].EmailSent)
	assert.True(t, reports.created[1].EmailSent)
}

func TestSendMonthlyReports_SkipsClientsWithoutEmail(t *testing.T) {
	clients := newFakeClientsRepo(
		&domain.Client{ID: 1, BusinessName: "NoMail", Services: []string{"seo"}, Status: "active"},
	)
	reports := newFakeReportsRepo()
	mailer := &fakeMailer{}
	svc, _ := newTestReportService(clients, reports, mailer)

	require.NoError(t, svc.GenerateAllReports(context.Background(), "2025-07"))
	require.NoError(t, svc.SendMonthlyReports(context.Background(), "2025-07"))

	assert.Empty(t, mailer.sent)
	assert.False(t, reports.created[0].EmailSent)
}

func TestSendMonthlyReports_NoReportsIsNoOp(t *testing.T) {
	mailer := &fakeMailer{}
	svc, _ := newTestReportService(newFakeClientsRepo(), newFakeReportsRepo(), mailer)

	require.NoError(t, svc.SendMonthlyReports(context.Background(), "2025-07"))
	assert.Empty(t, mailer.sent)
}
