package sensor_test

import (
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amansingh-afk/edgehdc/encode"
	"github.com/Amansingh-afk/edgehdc/hdc"
	"github.com/Amansingh-afk/edgehdc/sensor"
)

// ── Filter ────────────────────────────────────────────────────────────────────

func TestFilter_PassesValidRange(t *testing.T) {
	for _, raw := range []uint16{0, 1, 512, sensor.MaxReading} {
		v, err := sensor.Filter(raw)
		require.NoError(t, err)
		assert.Equal(t, raw, v)
	}
}

func TestFilter_RejectsSentinel(t *testing.T) {
	_, err := sensor.Filter(sensor.ErrorValue)
	assert.True(t, errors.Is(err, sensor.ErrReadFailed), "got %v", err)
}

func TestFilter_RejectsOutOfRange(t *testing.T) {
	for _, raw := range []uint16{1024, 4000, 0xFFFE} {
		_, err := sensor.Filter(raw)
		assert.True(t, errors.Is(err, sensor.ErrOutOfRange), "raw=%d: got %v", raw, err)
	}
}

// ── ReadFiltered / ReadAveraged ───────────────────────────────────────────────

func TestReadFiltered_SamplerError(t *testing.T) {
	boom := errors.New("bus fault")
	s := sensor.SamplerFunc(func(uint8) (uint16, error) { return 0, boom })

	_, err := sensor.ReadFiltered(s, 2)
	assert.True(t, errors.Is(err, sensor.ErrReadFailed), "got %v", err)
	assert.True(t, errors.Is(err, boom), "cause must be preserved: %v", err)
	assert.Contains(t, err.Error(), "channel 2")
}

func TestReadAveraged_Mean(t *testing.T) {
	seq := []uint16{100, 200, 300, 400}
	i := 0
	s := sensor.SamplerFunc(func(uint8) (uint16, error) {
		v := seq[i%len(seq)]
		i++
		return v, nil
	})
	v, err := sensor.ReadAveraged(s, 0, 4)
	require.NoError(t, err)
	assert.Equal(t, uint16(250), v)
}

func TestReadAveraged_SentinelFailsWholeAverage(t *testing.T) {
	seq := []uint16{1000, sensor.ErrorValue, 1000}
	i := 0
	s := sensor.SamplerFunc(func(uint8) (uint16, error) {
		v := seq[i]
		i++
		return v, nil
	})
	_, err := sensor.ReadAveraged(s, 0, 3)
	assert.True(t, errors.Is(err, sensor.ErrReadFailed), "got %v", err)
}

func TestReadAveraged_NonPositiveSamples(t *testing.T) {
	m := sensor.NewMock()
	m.Set(1, 77)
	v, err := sensor.ReadAveraged(m, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, uint16(77), v)
	assert.Equal(t, uint64(1), m.Reads())
}

func TestMillivolts(t *testing.T) {
	assert.Equal(t, uint16(0), sensor.Millivolts(0))
	assert.Equal(t, uint16(2500), sensor.Millivolts(512))
	assert.Equal(t, uint16(4995), sensor.Millivolts(sensor.MaxReading))
}

func TestCelsius(t *testing.T) {
	cases := []struct {
		raw  uint16
		want int16
	}{
		{0, -50},
		{102, 0}, // 498 mV truncates toward zero
		{205, 50},
		{512, 200},
		{sensor.MaxReading, 449},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, sensor.Celsius(c.raw), "raw=%d", c.raw)
	}
}

func TestCelsius_FeedsSigned(t *testing.T) {
	var v hdc.Vector
	require.NoError(t, encode.Signed(&v, sensor.Celsius(205), -50, 450))
	// 50 °C sits 100/500 of the way up the range: 25 of 128 dims.
	assert.Equal(t, 25, hdc.PopCount(&v))
}

// ── Mock ──────────────────────────────────────────────────────────────────────

func TestMock_DefaultsToMidScale(t *testing.T) {
	m := sensor.NewMock()
	for ch := uint8(0); ch < sensor.MockChannels; ch++ {
		v, err := m.Read(ch)
		require.NoError(t, err)
		assert.Equal(t, uint16(512), v)
	}
	assert.Equal(t, uint64(sensor.MockChannels), m.Reads())
}

func TestMock_Timeout(t *testing.T) {
	m := sensor.NewMock()
	m.SetTimeout(true)
	v, err := m.Read(0)
	require.NoError(t, err)
	assert.Equal(t, uint16(sensor.ErrorValue), v)

	_, err = sensor.ReadFiltered(m, 0)
	assert.True(t, errors.Is(err, sensor.ErrReadFailed))

	m.SetTimeout(false)
	_, err = sensor.ReadFiltered(m, 0)
	assert.NoError(t, err)
}

func TestMock_InvalidChannel(t *testing.T) {
	m := sensor.NewMock()
	m.Set(200, 5) // ignored
	_, err := sensor.ReadFiltered(m, sensor.MockChannels)
	assert.True(t, errors.Is(err, sensor.ErrInvalidChannel), "got %v", err)
	assert.Zero(t, m.Reads())
}

func TestMock_ConcurrentUse(t *testing.T) {
	m := sensor.NewMock()
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(ch uint8) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				m.Set(ch, uint16(i))
				_, _ = m.Read(ch)
			}
		}(uint8(g))
	}
	wg.Wait()
	assert.Equal(t, uint64(800), m.Reads())
}
