package metrics

import (
	"context"
	"testing"
	"time"

	"myscraper/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_ObserveCycle(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())
	end := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	c.ObserveCycle(nil, 150*time.Millisecond, end)
	c.ObserveCycle(assert.AnError, 10*time.Millisecond, end.Add(time.Minute))

	assert.Equal(t, 1.0, testutil.ToFloat64(c.cycles.WithLabelValues(resultSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.cycles.WithLabelValues(resultFailure)))
	assert.Equal(t, float64(end.Unix()), testutil.ToFloat64(c.lastSuccess))
	assert.Equal(t, 1, testutil.CollectAndCount(c.cycleDuration))
}

func TestCollector_Publish(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())
	credits := domain.NewCreditSet()
	credits.Add(domain.HostKindCompany, domain.Credit{Name: "ACME", URL: "https://acme.example"})
	credits.Add(domain.HostKindPerson, domain.Credit{Name: "Jane", URL: "https://jane.example"})
	credits.Add(domain.HostKindPerson, domain.Credit{Name: "Joe", URL: "https://joe.example"})

	require.NoError(t, c.Publish(context.Background(), domain.Snapshot{
		Instances: []domain.Instance{
			{Name: "a", Software: domain.SoftwareJitsi},
			{Name: "b", Software: domain.SoftwareJitsi},
			{Name: "c", Software: domain.SoftwareEdumeet},
		},
		Credits: credits.Lists(),
	}))

	assert.Equal(t, 2.0, testutil.ToFloat64(c.instances.WithLabelValues("JITSI")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.instances.WithLabelValues("MM")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.credits.WithLabelValues("COMPANY")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.credits.WithLabelValues("PERSON")))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.credits.WithLabelValues("INSTITUTION")))

	require.NoError(t, c.Publish(context.Background(), domain.Snapshot{Credits: domain.NewCreditSet().Lists()}))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.instances.WithLabelValues("JITSI")))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.credits.WithLabelValues("PERSON")))
}

func TestNewCollector_DoubleRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewCollector(reg)
	assert.Panics(t, func() { NewCollector(reg) })
}
