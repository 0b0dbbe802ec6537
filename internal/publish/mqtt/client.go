// internal/publish/mqtt/client.go
package mqtt

import (
	"errors"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"
)

// Client implements publish.Publisher over MQTT. Reconnection is the
// library's business; the engine only sees the boolean outcome of each
// publish and the connected signal.
type Client struct {
	cli     paho.Client
	timeout time.Duration
}

// Config is minimal broker config.
type Config struct {
	Broker   string
	ClientID string
	Username string
	Password string
	Timeout  time.Duration
}

// Connect creates the client and starts the first connection attempt.
// A broker that is down at boot is not fatal: connect-retry keeps trying
// in the background and publishes fail cleanly until it succeeds.
func Connect(cfg Config) (*Client, error) {
	if cfg.Broker == "" {
		return nil, errors.New("mqtt: broker required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}

	opts := paho.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetOrderMatters(false)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}
	opts.SetOnConnectHandler(func(paho.Client) {
		log.WithField("broker", cfg.Broker).Info("mqtt connected")
	})
	opts.SetConnectionLostHandler(func(_ paho.Client, err error) {
		log.WithField("broker", cfg.Broker).WithError(err).Warn("mqtt connection lost")
	})

	cli := paho.NewClient(opts)
	if tok := cli.Connect(); tok.WaitTimeout(cfg.Timeout) && tok.Error() != nil {
		log.WithError(tok.Error()).Warn("mqtt initial connect failed, retrying in background")
	}

	return &Client{cli: cli, timeout: cfg.Timeout}, nil
}

// Close disconnects from the broker.
func (c *Client) Close() {
	if c == nil || c.cli == nil {
		return
	}
	c.cli.Disconnect(250)
}

// ---- publish.Publisher ----

func (c *Client) Publish(topic string, payload []byte, retain bool) bool {
	tok := c.cli.Publish(topic, 0, retain, payload)
	if !tok.WaitTimeout(c.timeout) {
		log.WithField("topic", topic).Warn("mqtt publish timed out")
		return false
	}
	if err := tok.Error(); err != nil {
		log.WithField("topic", topic).WithError(err).Warn("mqtt publish failed")
		return false
	}
	return true
}

func (c *Client) Connected() bool {
	return c.cli.IsConnectionOpen()
}
