package notifications

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, event Event) {
	m.Called(ctx, event)
}

func TestLogNotifier_LevelsByTitle(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	n := NewLogNotifier(zap.New(core))

	n.Notify(context.Background(), Event{Title: TitleImportSuccess, Detail: "field.kml"})
	n.Notify(context.Background(), Event{Title: TitleError, Detail: "no geometry found", Kind: "NoGeometryFound"})

	entries := logs.All()
	if assert.Len(t, entries, 2) {
		assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
		assert.Equal(t, "field.kml", entries[0].ContextMap()["detail"])
		assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
		assert.Equal(t, "NoGeometryFound", entries[1].ContextMap()["kind"])
	}
}

func TestFanout_DeliversToAll(t *testing.T) {
	ctx := context.Background()
	event := Event{Title: TitleImportSuccess, Detail: "a.geojson"}
	first := new(MockNotifier)
	second := new(MockNotifier)
	first.On("Notify", ctx, event).Return()
	second.On("Notify", ctx, event).Return()

	Fanout{first, nil, second}.Notify(ctx, event)

	first.AssertExpectations(t)
	second.AssertExpectations(t)
}

func TestEvent_IsError(t *testing.T) {
	assert.True(t, Event{Title: TitleError}.IsError())
	assert.False(t, Event{Title: TitleImportSuccess}.IsError())
}
