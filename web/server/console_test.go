package server

import (
	"encoding/json"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestConsoleLogger_BasicLogging(t *testing.T) {
	// Create a channel to receive console messages
	messageChan := make(chan ConsoleMessage, 10)
	logger := NewConsoleLogger(zap.NewNop(), messageChan)

	logger.Info("Render finished", zap.Int("width", 3))

	select {
	case msg := <-messageChan:
		if msg.Message != "Render finished" {
			t.Errorf("Expected message 'Render finished', got '%s'", msg.Message)
		}
		if msg.Level != "info" {
			t.Errorf("Expected level 'info', got '%s'", msg.Level)
		}
		if msg.Fields["width"] != int64(3) {
			t.Errorf("Expected width field 3, got %v", msg.Fields["width"])
		}
		if time.Since(msg.Timestamp) > time.Second {
			t.Errorf("Timestamp seems too old: %v", msg.Timestamp)
		}
	default:
		t.Error("Expected a console message")
	}
}

func TestConsoleLogger_MultipleMessages(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 10)
	logger := NewConsoleLogger(zap.NewNop(), messageChan)

	messages := []string{"Message 1", "Message 2", "Message 3"}
	levels := []string{"debug", "warn", "error"}
	logger.Debug(messages[0])
	logger.Warn(messages[1])
	logger.Error(messages[2])

	received := drainConsole(messageChan)
	if len(received) != len(messages) {
		t.Fatalf("Expected %d messages, got %d", len(messages), len(received))
	}
	for i, msg := range received {
		if msg.Message != messages[i] || msg.Level != levels[i] {
			t.Errorf("Message %d: expected %s/%s, got %s/%s", i, messages[i], levels[i], msg.Message, msg.Level)
		}
	}
}

func TestConsoleLogger_ChannelFull(t *testing.T) {
	// Create a small channel that will fill up
	messageChan := make(chan ConsoleMessage, 1)
	logger := NewConsoleLogger(zap.NewNop(), messageChan)

	logger.Info("Message 1")
	// These must not block even though the channel is full
	logger.Info("Message 2")
	logger.Info("Message 3")

	received := drainConsole(messageChan)
	if len(received) != 1 || received[0].Message != "Message 1" {
		t.Errorf("Expected only the first message to be kept, got %+v", received)
	}
}

func TestConsoleLogger_NilChannel(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := NewConsoleLogger(zap.New(core), nil)

	// This should not panic and still reach the base logger
	logger.Info("Test message with nil channel")

	if logs.Len() != 1 {
		t.Errorf("Expected the base logger to receive 1 entry, got %d", logs.Len())
	}
}

func TestConsoleLogger_TeesToBase(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	messageChan := make(chan ConsoleMessage, 10)
	logger := NewConsoleLogger(zap.New(core), messageChan).
		Named("renderer").
		With(zap.String("renderID", "render-7"))

	logger.Info("Render started", zap.String("strategy", "rows"))

	entries := logs.All()
	if len(entries) != 1 || entries[0].LoggerName != "renderer" {
		t.Fatalf("Expected one base entry from 'renderer', got %+v", entries)
	}

	received := drainConsole(messageChan)
	if len(received) != 1 {
		t.Fatalf("Expected 1 console message, got %d", len(received))
	}
	msg := received[0]
	if msg.Logger != "renderer" {
		t.Errorf("Expected logger name 'renderer', got '%s'", msg.Logger)
	}
	if msg.Fields["renderID"] != "render-7" || msg.Fields["strategy"] != "rows" {
		t.Errorf("Expected context and entry fields, got %v", msg.Fields)
	}
}

func TestConsoleMessage_JSONSerialization(t *testing.T) {
	msg := ConsoleMessage{
		Message:   "Test message",
		Timestamp: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Level:     "info",
	}

	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}
	expected := `{"message":"Test message","timestamp":"2024-01-02T03:04:05Z","level":"info"}`
	if string(data) != expected {
		t.Errorf("Expected %s, got %s", expected, data)
	}
}
