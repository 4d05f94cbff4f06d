// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package relay_test

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"code.hybscloud.com/callback"
	"code.hybscloud.com/callback/internal/relay"
)

type counter struct {
	total int
}

func (c *counter) Add(n int) int {
	c.total += n
	return c.total
}

type doubler struct{}

func (*doubler) Double(n int) int { return 2 * n }

func newTestLogger() (*logrus.Entry, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetLevel(logrus.DebugLevel)
	logger.SetFormatter(&logrus.TextFormatter{DisableColors: true, DisableTimestamp: true})
	return logrus.NewEntry(logger), &buf
}

func TestFireInAttachOrder(t *testing.T) {
	log, _ := newTestLogger()
	r := relay.New[int, int]("order", log)

	var c counter
	var d doubler
	require.NoError(t, r.Attach(callback.Bind(&c, (*counter).Add)))
	require.NoError(t, r.Attach(callback.Bind(&d, (*doubler).Double)))

	var got []int
	n := r.Fire(5, func(v int) { got = append(got, v) })

	assert.Equal(t, 2, n)
	assert.Equal(t, []int{5, 10}, got)
	assert.Equal(t, 5, c.total)
}

func TestFireNilYield(t *testing.T) {
	r := relay.New[int, int]("nil-yield", nil)
	var c counter
	require.NoError(t, r.Attach(callback.Bind(&c, (*counter).Add)))

	assert.Equal(t, 1, r.Fire(3, nil))
	assert.Equal(t, 3, c.total)
}

func TestAttachUnbound(t *testing.T) {
	r := relay.New[int, int]("unbound", nil)
	err := r.Attach(callback.Callback[int, int]{})

	assert.ErrorIs(t, err, relay.ErrUnbound)
	assert.Equal(t, 0, r.Len())
}

func TestAttachFull(t *testing.T) {
	log, buf := newTestLogger()
	r := relay.New[int, int]("full", log)

	var cs [relay.Capacity + 1]counter
	for i := range relay.Capacity {
		require.NoError(t, r.Attach(callback.Bind(&cs[i], (*counter).Add)))
	}
	err := r.Attach(callback.Bind(&cs[relay.Capacity], (*counter).Add))

	assert.ErrorIs(t, err, relay.ErrFull)
	assert.Equal(t, relay.Capacity, r.Len())
	assert.Contains(t, buf.String(), "Relay full")
	assert.Contains(t, buf.String(), "relay=full")
}

func TestDetach(t *testing.T) {
	r := relay.New[int, int]("detach", nil)
	var a, b, c counter
	ha := callback.Bind(&a, (*counter).Add)
	hb := callback.Bind(&b, (*counter).Add)
	hc := callback.Bind(&c, (*counter).Add)
	for _, h := range []callback.Callback[int, int]{ha, hb, hc} {
		require.NoError(t, r.Attach(h))
	}

	assert.True(t, r.Detach(hb))
	assert.False(t, r.Detach(hb))
	assert.Equal(t, 2, r.Len())

	r.Fire(1, nil)
	assert.Equal(t, 1, a.total)
	assert.Equal(t, 0, b.total)
	assert.Equal(t, 1, c.total)
}

func TestDetachThenAttachReusesSlot(t *testing.T) {
	r := relay.New[int, int]("reuse", nil)
	var cs [relay.Capacity]counter
	hs := make([]callback.Callback[int, int], relay.Capacity)
	for i := range hs {
		hs[i] = callback.Bind(&cs[i], (*counter).Add)
		require.NoError(t, r.Attach(hs[i]))
	}

	require.True(t, r.Detach(hs[0]))
	var extra counter
	assert.NoError(t, r.Attach(callback.Bind(&extra, (*counter).Add)))

	r.Fire(2, nil)
	assert.Equal(t, 0, cs[0].total)
	assert.Equal(t, 2, extra.total)
}

func TestClear(t *testing.T) {
	r := relay.New[int, int]("clear", nil)
	var c counter
	require.NoError(t, r.Attach(callback.Bind(&c, (*counter).Add)))

	r.Clear()

	assert.Equal(t, 0, r.Len())
	assert.Equal(t, 0, r.Fire(1, nil))
	assert.Equal(t, 0, c.total)
}

func TestDebugLogging(t *testing.T) {
	log, buf := newTestLogger()
	r := relay.New[int, int]("logged", log)
	var c counter
	h := callback.Bind(&c, (*counter).Add)

	require.NoError(t, r.Attach(h))
	r.Fire(1, nil)
	r.Detach(h)

	out := buf.String()
	assert.Contains(t, out, "Callback attached")
	assert.Contains(t, out, "Firing relay")
	assert.Contains(t, out, "Callback detached")
	assert.Equal(t, "logged", r.Name())
}

func TestFireAllocations(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)
	r := relay.New[int, int]("allocs", logrus.NewEntry(logger))
	var c counter
	require.NoError(t, r.Attach(callback.Bind(&c, (*counter).Add)))

	allocs := testing.AllocsPerRun(100, func() {
		r.Fire(1, nil)
	})
	if allocs > 0 {
		t.Errorf("Fire allocs = %v; want 0", allocs)
	}
}

// oneShot detaches itself from its relay the first time it is called.
type oneShot struct {
	r    *relay.Relay[int, int]
	self callback.Callback[int, int]
	hits int
}

func (o *oneShot) Fire(n int) int {
	o.hits++
	o.r.Detach(o.self)
	return n
}

func TestFireSelfDetach(t *testing.T) {
	r := relay.New[int, int]("one-shot", nil)
	o := &oneShot{r: r}
	o.self = callback.Bind(o, (*oneShot).Fire)
	var c counter
	require.NoError(t, r.Attach(o.self))
	require.NoError(t, r.Attach(callback.Bind(&c, (*counter).Add)))

	assert.Equal(t, 2, r.Fire(1, nil))
	assert.Equal(t, 1, o.hits)
	assert.Equal(t, 1, c.total, "handle after a self-detaching one must still fire")
	assert.Equal(t, 1, r.Len())

	assert.Equal(t, 1, r.Fire(1, nil))
	assert.Equal(t, 1, o.hits)
	assert.Equal(t, 2, c.total)
}

func TestFireAttachDuringFire(t *testing.T) {
	r := relay.New[int, int]("grow", nil)
	var late counter
	a := &attacher{r: r, h: callback.Bind(&late, (*counter).Add)}
	require.NoError(t, r.Attach(callback.Bind(a, (*attacher).Fire)))

	assert.Equal(t, 1, r.Fire(5, nil))
	assert.Equal(t, 0, late.total, "handles attached during Fire wait for the next one")
	assert.Equal(t, 2, r.Len())

	r.Fire(5, nil)
	assert.Equal(t, 5, late.total)
}

// attacher attaches h to its relay once.
type attacher struct {
	r    *relay.Relay[int, int]
	h    callback.Callback[int, int]
	done bool
}

func (a *attacher) Fire(n int) int {
	if !a.done {
		a.done = true
		_ = a.r.Attach(a.h)
	}
	return n
}
