package config

import (
	"errors"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGbFormatterPlain(t *testing.T) {
	entry := &log.Entry{
		Logger:  log.New(),
		Level:   log.WarnLevel,
		Time:    time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC),
		Message: "queue full\nretry later",
		Data: log.Fields{
			"group_id": int64(-100500),
			"context":  "engine",
			"error":    errors.New("boom"),
		},
	}

	out, err := (&GbFormatter{NoColor: true}).Format(entry)
	require.NoError(t, err)
	assert.Equal(t,
		`level=WARN ts=2024-03-01 12:30:00.000 context="engine" error="boom" group_id=-100500 msg="queue full\nretry later"`+"\n",
		string(out),
	)
}
