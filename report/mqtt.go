package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Comcast/spamscan/records"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"
)

// Message is the JSON payload that MQTT publishes.
type Message struct {
	Input   string          `json:"input"`
	At      time.Time       `json:"at"`
	Flagged []int           `json:"flagged"`
	Result  *records.Result `json:"result"`
}

// MQTTConf configures an MQTT Reporter.
type MQTTConf struct {
	// Broker is a URL like "tcp://localhost:1883".
	Broker   string
	ClientID string
	Topic    string
	QoS      byte
	Retain   bool

	// Timeout bounds connecting and each publish.
	Timeout time.Duration
}

// MQTT publishes Results to an MQTT broker.
type MQTT struct {
	Conf   MQTTConf
	Client mqtt.Client

	logger *zap.Logger
}

// NewMQTT makes an MQTT Reporter with a Paho client.  Call Start to
// connect.
func NewMQTT(conf MQTTConf, logger *zap.Logger) *MQTT {
	if logger == nil {
		logger = zap.NewNop()
	}
	if conf.Timeout == 0 {
		conf.Timeout = 10 * time.Second
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(conf.Broker)
	opts.SetClientID(conf.ClientID)
	opts.SetConnectTimeout(conf.Timeout)
	opts.OnConnectionLost = func(client mqtt.Client, err error) {
		logger.Warn("MQTT connection lost", zap.Error(err))
	}

	return &MQTT{
		Conf:   conf,
		Client: mqtt.NewClient(opts),
		logger: logger,
	}
}

// ErrTimeout is returned when the broker doesn't acknowledge a
// connect or a publish within MQTTConf.Timeout.
var ErrTimeout = errors.New("mqtt timeout")

func (m *MQTT) wait(t mqtt.Token) error {
	if !t.WaitTimeout(m.Conf.Timeout) {
		return ErrTimeout
	}
	return t.Error()
}

// Start connects to the broker.
func (m *MQTT) Start(ctx context.Context) error {
	if err := m.wait(m.Client.Connect()); err != nil {
		return fmt.Errorf("connecting to %s: %w", m.Conf.Broker, err)
	}
	m.logger.Info("Connected to broker", zap.String("broker", m.Conf.Broker))
	return nil
}

// Stop disconnects after waiting (up to a quarter second) for work
// to finish.  The wait is shorter if ctx has an earlier deadline, and
// there's no wait at all if ctx is already done, in which case Stop
// returns ctx's error.
func (m *MQTT) Stop(ctx context.Context) error {
	quiesce := 250 * time.Millisecond
	if deadline, have := ctx.Deadline(); have {
		if left := time.Until(deadline); left < quiesce {
			quiesce = left
		}
	}
	if ctx.Err() != nil || quiesce < 0 {
		quiesce = 0
	}
	if m.Client.IsConnected() {
		m.Client.Disconnect(uint(quiesce / time.Millisecond))
		m.logger.Info("Disconnected from broker", zap.String("broker", m.Conf.Broker))
	}
	return ctx.Err()
}

// Payload renders the Message for a Result.
func Payload(input string, at time.Time, res *records.Result) ([]byte, error) {
	flagged := res.Flagged
	if flagged == nil {
		flagged = []int{}
	}
	return json.Marshal(&Message{
		Input:   input,
		At:      at.UTC(),
		Flagged: flagged,
		Result:  res,
	})
}

func (m *MQTT) Report(ctx context.Context, input string, res *records.Result) error {
	js, err := Payload(input, time.Now(), res)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	m.logger.Debug("publishing",
		zap.String("topic", m.Conf.Topic),
		zap.Int("flagged", len(res.Flagged)))
	if err := m.wait(m.Client.Publish(m.Conf.Topic, m.Conf.QoS, m.Conf.Retain, js)); err != nil {
		return fmt.Errorf("publishing to %s: %w", m.Conf.Topic, err)
	}
	return nil
}
