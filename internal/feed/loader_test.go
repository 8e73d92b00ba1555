package feed

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T, l *Loader, svc Service) bool {
	t.Helper()
	req, err := l.Begin()
	require.NoError(t, err)
	p, err := svc.Fetch(req.Offset, req.Limit)
	changed, err := l.Apply(req, p, err)
	require.NoError(t, err)
	return changed
}

func TestLoader_PagesUntilExhausted(t *testing.T) {
	svc := NewGeneratedService(25)
	l := NewLoader(10)

	assert.True(t, load(t, l, svc))
	assert.Len(t, l.Records(), 10)
	assert.True(t, load(t, l, svc))
	assert.True(t, load(t, l, svc))
	assert.Len(t, l.Records(), 25)
	assert.True(t, l.Done())

	_, err := l.Begin()
	assert.ErrorIs(t, err, ErrExhausted)
}

func TestLoader_SingleRequestInFlight(t *testing.T) {
	l := NewLoader(5)
	req, err := l.Begin()
	require.NoError(t, err)
	assert.True(t, l.Loading())

	_, err = l.Begin()
	assert.ErrorIs(t, err, ErrInFlight)

	_, err = l.Apply(req, Page{}, errors.New("boom"))
	assert.ErrorContains(t, err, "boom")
	assert.False(t, l.Loading())

	_, err = l.Begin()
	assert.NoError(t, err)
}

func TestLoader_NewSliceEachPage(t *testing.T) {
	svc := NewGeneratedService(20)
	l := NewLoader(5)
	load(t, l, svc)
	first := l.Records()
	load(t, l, svc)
	assert.NotSame(t, &first[0], &l.Records()[0])
}

func TestLoader_RestartDropsStaleResults(t *testing.T) {
	svc := NewGeneratedService(30)
	l := NewLoader(10)
	load(t, l, svc)
	load(t, l, svc)

	stale, err := l.Begin()
	require.NoError(t, err)

	req := l.Restart()
	assert.Equal(t, Request{Offset: 0, Limit: 20, gen: 1}, req)
	assert.Empty(t, l.Records())

	p, _ := svc.Fetch(stale.Offset, stale.Limit)
	changed, err := l.Apply(stale, p, nil)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.True(t, l.Loading(), "restart request still outstanding")

	p, err = svc.Fetch(req.Offset, req.Limit)
	changed, err = l.Apply(req, p, err)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Len(t, l.Records(), 20)
	assert.False(t, l.Done())
}

func TestLoader_Reset(t *testing.T) {
	svc := NewGeneratedService(10)
	l := NewLoader(4)
	load(t, l, svc)
	stale, err := l.Begin()
	require.NoError(t, err)

	l.Reset()
	assert.Empty(t, l.Records())
	assert.False(t, l.Loading())

	p, _ := svc.Fetch(stale.Offset, stale.Limit)
	changed, err := l.Apply(stale, p, nil)
	require.NoError(t, err)
	assert.False(t, changed)

	assert.True(t, load(t, l, svc))
	assert.Equal(t, 0, l.Records()[0].Index)
}

func TestLoadAll(t *testing.T) {
	records, err := LoadAll(NewGeneratedService(23), 5)
	require.NoError(t, err)
	require.Len(t, records, 23)
	assert.Equal(t, 22, records[22].Index)

	records, err = LoadAll(NewGeneratedService(0), 5)
	require.NoError(t, err)
	assert.Empty(t, records)

	_, err = LoadAll(brokenService{}, 5)
	assert.ErrorContains(t, err, "down")
}

type brokenService struct{}

func (brokenService) Name() string { return "broken" }
func (brokenService) Path() string { return "" }
func (brokenService) Fetch(int, int) (Page, error) {
	return Page{}, errors.New("down")
}
