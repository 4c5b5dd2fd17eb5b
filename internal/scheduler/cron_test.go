package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amaumene/cineslime/internal/config"
	"github.com/amaumene/cineslime/internal/controllers"
	"github.com/amaumene/cineslime/internal/models"
)

type stubAdmin struct {
	summary *controllers.Summary
	pending []*models.Request
	err     error
	limit   int
}

func (s *stubAdmin) Summary(ctx context.Context) (*controllers.Summary, error) {
	return s.summary, s.err
}

func (s *stubAdmin) PendingRequests(ctx context.Context, limit int) ([]*models.Request, error) {
	s.limit = limit
	return s.pending, s.err
}

type recordingDigest struct {
	sent [][]*models.Request
	err  error
}

func (r *recordingDigest) SendRequestDigest(ctx context.Context, reqs []*models.Request) error {
	r.sent = append(r.sent, reqs)
	return r.err
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

// gaugeValue reads a gauge from the default registry; labels are matched by value
func gaugeValue(t *testing.T, name string, labelValue string) float64 {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, m := range family.GetMetric() {
			if labelValue == "" && len(m.GetLabel()) == 0 {
				return m.GetGauge().GetValue()
			}
			for _, label := range m.GetLabel() {
				if label.GetValue() == labelValue {
					return m.GetGauge().GetValue()
				}
			}
		}
	}
	t.Fatalf("gauge %s{%s} not found", name, labelValue)
	return 0
}

func TestRefreshGauges(t *testing.T) {
	admin := &stubAdmin{summary: &controllers.Summary{
		Medias:       5,
		MediasByType: map[models.MediaType]int64{models.MediaTypeMovie: 4, models.MediaTypeTV: 1},
		Users:        12,
	}}
	s := NewScheduler(&config.Config{}, admin, &recordingDigest{}, quietLogger())

	s.RefreshGauges(context.Background())

	assert.Equal(t, 4.0, gaugeValue(t, "cineslime_archive_records", "movie"))
	assert.Equal(t, 1.0, gaugeValue(t, "cineslime_archive_records", "tv"))
	assert.Equal(t, 12.0, gaugeValue(t, "cineslime_users", ""))
}

func TestRefreshGaugesKeepsValuesOnFailure(t *testing.T) {
	admin := &stubAdmin{summary: &controllers.Summary{Users: 3}}
	s := NewScheduler(&config.Config{}, admin, &recordingDigest{}, quietLogger())
	s.RefreshGauges(context.Background())

	admin.err = errors.New("database is locked")
	s.RefreshGauges(context.Background())

	assert.Equal(t, 3.0, gaugeValue(t, "cineslime_users", ""))
}

func TestSendDigest(t *testing.T) {
	pending := []*models.Request{{ID: 1, Title: "Dune"}, {ID: 2, Title: "Dark"}}
	admin := &stubAdmin{pending: pending}
	digest := &recordingDigest{}
	s := NewScheduler(&config.Config{}, admin, digest, quietLogger())

	s.SendDigest(context.Background())

	require.Len(t, digest.sent, 1)
	assert.Equal(t, pending, digest.sent[0])
	assert.Equal(t, digestSize, admin.limit)
}

func TestSendDigestSkipsWhenNothingPending(t *testing.T) {
	digest := &recordingDigest{}
	s := NewScheduler(&config.Config{}, &stubAdmin{}, digest, quietLogger())

	s.SendDigest(context.Background())

	assert.Empty(t, digest.sent)
}

func TestStartRejectsBadSchedule(t *testing.T) {
	s := NewScheduler(&config.Config{RequestDigestCron: "not a schedule"}, &stubAdmin{summary: &controllers.Summary{}}, &recordingDigest{}, quietLogger())

	err := s.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "digest job")
}

func TestStartAndStop(t *testing.T) {
	s := NewScheduler(&config.Config{RequestDigestCron: "0 9 * * *"}, &stubAdmin{summary: &controllers.Summary{}}, &recordingDigest{}, quietLogger())

	require.NoError(t, s.Start(context.Background()))
	assert.Len(t, s.cron.Entries(), 2)
	s.Stop()
}
