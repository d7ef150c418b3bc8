package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caresure/providerportal/internal/adapters/history"
	"github.com/caresure/providerportal/internal/adapters/kv"
	"github.com/caresure/providerportal/internal/adapters/providers/tracegen"
	"github.com/caresure/providerportal/internal/adapters/registry"
	"github.com/caresure/providerportal/internal/adapters/storage"
	"github.com/caresure/providerportal/internal/application/services"
	"github.com/caresure/providerportal/internal/domain/entities"
	"github.com/caresure/providerportal/internal/domain/providers"
)

type failingGenerator struct{}

func (failingGenerator) GenerateTrace(ctx context.Context, _ entities.ProviderDescriptor, _ entities.VerdictCore) ([]entities.PipelineStage, error) {
	return nil, errors.New("upstream unavailable")
}

type recordingBus struct {
	mu     sync.Mutex
	events map[string][]*entities.VerificationEvent
	fail   bool
}

func newRecordingBus() *recordingBus {
	return &recordingBus{events: make(map[string][]*entities.VerificationEvent)}
}

func (b *recordingBus) Publish(_ context.Context, channel string, event *entities.VerificationEvent) error {
	if b.fail {
		return errors.New("bus down")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events[channel] = append(b.events[channel], event)
	return nil
}

func (b *recordingBus) Subscribe(context.Context, string) (<-chan *entities.VerificationEvent, error) {
	return nil, errors.New("not implemented")
}

func (b *recordingBus) Close() error { return nil }

func (b *recordingBus) published(channel string) []*entities.VerificationEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]*entities.VerificationEvent(nil), b.events[channel]...)
}

type verificationFixture struct {
	service *services.VerificationService
	store   *storage.SnapshotStore
	history *history.KVHistory
	bus     *recordingBus
}

func newVerificationFixture(t *testing.T, generator providers.TraceGenerator) *verificationFixture {
	t.Helper()
	logger := zerolog.Nop()

	store := storage.NewSnapshotStore(kv.NewMemoryStore(), logger)
	require.NoError(t, store.Load(context.Background()))

	hist := history.NewKVHistory(kv.NewMemoryStore(), logger)
	bus := newRecordingBus()

	service := services.NewVerificationService(
		services.NewVerdictService(registry.NewSeededRegistry()),
		services.NewTraceService(logger),
		generator,
		store,
		hist,
		bus,
		time.Second,
		logger,
	)
	return &verificationFixture{service: service, store: store, history: hist, bus: bus}
}

func TestVerify_CleanProvider(t *testing.T) {
	f := newVerificationFixture(t, tracegen.NewMockTraceGenerator())

	descriptor := entities.ProviderDescriptor{
		Name:      "Dr. Sarah Jenning",
		LicenseID: "MD-CA-49210",
		Type:      entities.ProviderDoctor,
	}
	verdict, err := f.service.Verify(context.Background(), "1", descriptor)
	require.NoError(t, err)

	assert.True(t, verdict.Verified)
	assert.Equal(t, entities.StatusVerified, verdict.Status)
	assert.Equal(t, services.ConfidenceVerified, verdict.ConfidenceScore)
	assert.Len(t, verdict.SourcesChecked, 3)
	require.NotEmpty(t, verdict.Trace)
	for _, stage := range verdict.Trace {
		assert.NotEqual(t, entities.StageFailed, stage.Status)
	}

	records, err := f.history.List(context.Background(), "1")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, entities.StatusVerified, records[0].Verdict.Status)

	events := f.bus.published(providers.EventChannelVerifications)
	require.Len(t, events, 1)
	assert.Equal(t, entities.EventVerificationCompleted, events[0].EventType)
	assert.Len(t, f.bus.published(providers.GetProviderChannel("1")), 1)
}

func TestVerify_SanctionedProviderEscalates(t *testing.T) {
	f := newVerificationFixture(t, tracegen.NewMockTraceGenerator())

	descriptor := entities.ProviderDescriptor{
		Name:      "Dr. James Wilson",
		LicenseID: "FLG-TX-00000",
		Type:      entities.ProviderDoctor,
	}
	verdict, err := f.service.Verify(context.Background(), "4", descriptor)
	require.NoError(t, err)

	assert.False(t, verdict.Verified)
	assert.Equal(t, entities.StatusFlagged, verdict.Status)
	assert.Equal(t, services.ConfidenceSanctioned, verdict.ConfidenceScore)

	provider, err := f.store.GetProvider(context.Background(), "4")
	require.NoError(t, err)
	assert.Equal(t, entities.RiskHigh, provider.Risk)
	assert.True(t, provider.UnderSurveillance)

	events := f.bus.published(providers.EventChannelVerifications)
	require.Len(t, events, 1)
	assert.Equal(t, entities.EventProviderFlagged, events[0].EventType)
}

func TestVerify_GeneratorFailureFallsBack(t *testing.T) {
	f := newVerificationFixture(t, failingGenerator{})

	descriptor := entities.ProviderDescriptor{
		Name:      "Dr. Emily Chen",
		LicenseID: "MD-CA-11234",
		Type:      entities.ProviderDoctor,
	}
	verdict, err := f.service.Verify(context.Background(), "3", descriptor)
	require.NoError(t, err)

	assert.Equal(t, entities.StatusVerified, verdict.Status)
	assert.Len(t, verdict.Trace, 5, "fallback trace has all five pipeline stages")
}

func TestVerify_BusFailureIsNonFatal(t *testing.T) {
	f := newVerificationFixture(t, tracegen.NewMockTraceGenerator())
	f.bus.fail = true

	descriptor := entities.ProviderDescriptor{
		Name:      "Dr. Emily Chen",
		LicenseID: "MD-CA-11234",
		Type:      entities.ProviderDoctor,
	}
	_, err := f.service.Verify(context.Background(), "3", descriptor)
	assert.NoError(t, err)
}

func TestVerify_UnknownProviderIDStillRecordsHistory(t *testing.T) {
	f := newVerificationFixture(t, tracegen.NewMockTraceGenerator())

	descriptor := entities.ProviderDescriptor{
		Name:      "Dr. James Wilson",
		LicenseID: "FLG-TX-00000",
		Type:      entities.ProviderDoctor,
	}
	verdict, err := f.service.Verify(context.Background(), "ghost-99", descriptor)
	require.NoError(t, err)
	assert.Equal(t, entities.StatusFlagged, verdict.Status)

	records, err := f.history.List(context.Background(), "ghost-99")
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestVerifyStoredProvider(t *testing.T) {
	f := newVerificationFixture(t, tracegen.NewMockTraceGenerator())

	verdict, err := f.service.VerifyStoredProvider(context.Background(), "2")
	require.NoError(t, err)
	assert.Equal(t, entities.StatusFlagged, verdict.Status, "Dr. Sloan carries disciplinary history")
	assert.Equal(t, services.ConfidenceDisciplinary, verdict.ConfidenceScore)

	_, err = f.service.VerifyStoredProvider(context.Background(), "no-such-provider")
	assert.Error(t, err)
}
