package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcatlas/vcatlas/internal/fetcher"
	"github.com/vcatlas/vcatlas/internal/index"
	"github.com/vcatlas/vcatlas/internal/llm"
	"github.com/vcatlas/vcatlas/internal/metrics"
	"github.com/vcatlas/vcatlas/internal/vc"
)

func TestMain(m *testing.M) {
	metrics.Init()
	m.Run()
}

type fakeFetcher struct {
	resp fetcher.Response
	err  error
}

func (f *fakeFetcher) Fetch(_ context.Context, req fetcher.Request) (fetcher.Response, error) {
	if f.err != nil {
		return fetcher.Response{}, f.err
	}
	resp := f.resp
	resp.URL = req.URL
	return resp, nil
}

type fakeExtractor struct {
	record  vc.Record
	err     error
	gotText string
}

func (e *fakeExtractor) Extract(_ context.Context, text string) (vc.Record, error) {
	e.gotText = text
	if e.err != nil {
		return vc.Record{}, e.err
	}
	return e.record, nil
}

type fakeIndex struct {
	names      []string
	matches    []index.Match
	namesErr   error
	insertErr  error
	similarErr error

	namesCalls int
	inserted   map[string]vc.Record
	gotQuery   string
	gotLimit   int
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{inserted: map[string]vc.Record{}}
}

func (i *fakeIndex) EnsureSchema(context.Context) error { return nil }

func (i *fakeIndex) Names(context.Context) ([]string, error) {
	i.namesCalls++
	return i.names, i.namesErr
}

func (i *fakeIndex) Insert(_ context.Context, id string, record vc.Record) error {
	if i.insertErr != nil {
		return i.insertErr
	}
	i.inserted[id] = record
	return nil
}

func (i *fakeIndex) Similar(_ context.Context, query string, limit int) ([]index.Match, error) {
	i.gotQuery = query
	i.gotLimit = limit
	return i.matches, i.similarErr
}

func sampleRecord() vc.Record {
	return vc.Record{
		VCName:           "Acme Ventures",
		Contacts:         vc.StringList{"hello@acme.vc"},
		Industries:       vc.StringList{"fintech"},
		InvestmentRounds: vc.StringList{"Seed"},
	}
}

func TestProcessInsertsNewRecord(t *testing.T) {
	record := sampleRecord()
	idx := newFakeIndex()
	idx.matches = []index.Match{
		{VCName: "Acme Ventures", Distance: 0},
		{VCName: "Beta Capital", Distance: 0.2},
		{VCName: "Gamma Partners", Distance: 0.3},
	}
	ext := &fakeExtractor{record: record}
	p := New(
		&fakeFetcher{resp: fetcher.Response{StatusCode: 200, Body: []byte("<html><body>Acme</body></html>")}},
		ext, idx, nil,
	)

	result, err := p.Process(context.Background(), "https://acme.vc")
	require.NoError(t, err)

	assert.True(t, result.Inserted)
	require.Len(t, idx.inserted, 1)
	stored, ok := idx.inserted[record.ID()]
	require.True(t, ok, "record must be stored under its deterministic id")
	assert.Equal(t, record, stored)

	assert.Equal(t, []string{"Acme Ventures", "Beta Capital", "Gamma Partners"}, result.Similar)
	assert.Equal(t, record.Canonical(), idx.gotQuery)
	assert.Equal(t, 3, idx.gotLimit)
	assert.True(t, strings.Contains(result.Summary, "- Vc_name: Acme Ventures"))
	assert.NotEmpty(t, ext.gotText, "extractor must receive the page text")
}

func TestProcessSkipsInsertForKnownName(t *testing.T) {
	record := sampleRecord()
	idx := newFakeIndex()
	// Same name already stored, even though the other fields differ.
	idx.names = []string{"Beta Capital", "Acme Ventures"}
	p := New(
		&fakeFetcher{resp: fetcher.Response{StatusCode: 200, Body: []byte("<html></html>")}},
		&fakeExtractor{record: record}, idx, nil,
	)

	result, err := p.Process(context.Background(), "https://acme.vc")
	require.NoError(t, err)
	assert.False(t, result.Inserted)
	assert.Empty(t, idx.inserted)
}

func TestProcessFetchFailure(t *testing.T) {
	idx := newFakeIndex()
	p := New(
		&fakeFetcher{err: fetcher.ErrFetch},
		&fakeExtractor{record: sampleRecord()}, idx, nil,
	)

	_, err := p.Process(context.Background(), "https://acme.vc")
	require.ErrorIs(t, err, fetcher.ErrFetch)
	assert.Zero(t, idx.namesCalls, "index must not be touched after a fetch failure")
}

func TestProcessExtractionFailure(t *testing.T) {
	idx := newFakeIndex()
	p := New(
		&fakeFetcher{resp: fetcher.Response{StatusCode: 200, Body: []byte("<html></html>")}},
		&fakeExtractor{err: llm.ErrExtraction}, idx, nil,
	)

	_, err := p.Process(context.Background(), "https://acme.vc")
	require.ErrorIs(t, err, llm.ErrExtraction)
	assert.Zero(t, idx.namesCalls)
}

func TestProcessIndexFailuresAreUnclassified(t *testing.T) {
	record := sampleRecord()

	idx := newFakeIndex()
	idx.namesErr = errors.New("cluster unavailable")
	p := New(
		&fakeFetcher{resp: fetcher.Response{StatusCode: 200, Body: []byte("<html></html>")}},
		&fakeExtractor{record: record}, idx, nil,
	)
	_, err := p.Process(context.Background(), "https://acme.vc")
	require.Error(t, err)
	assert.NotErrorIs(t, err, fetcher.ErrFetch)
	assert.NotErrorIs(t, err, llm.ErrExtraction)

	idx = newFakeIndex()
	idx.insertErr = errors.New("insert rejected")
	p = New(
		&fakeFetcher{resp: fetcher.Response{StatusCode: 200, Body: []byte("<html></html>")}},
		&fakeExtractor{record: record}, idx, nil,
	)
	_, err = p.Process(context.Background(), "https://acme.vc")
	require.Error(t, err)
	assert.NotErrorIs(t, err, fetcher.ErrFetch)
	assert.NotErrorIs(t, err, llm.ErrExtraction)

	idx = newFakeIndex()
	idx.similarErr = errors.New("query failed")
	p = New(
		&fakeFetcher{resp: fetcher.Response{StatusCode: 200, Body: []byte("<html></html>")}},
		&fakeExtractor{record: record}, idx, nil,
	)
	_, err = p.Process(context.Background(), "https://acme.vc")
	require.Error(t, err)
	assert.NotErrorIs(t, err, fetcher.ErrFetch)
}

func TestProcessUnparsableBaseURLIsFetchError(t *testing.T) {
	idx := newFakeIndex()
	p := New(
		&fakeFetcher{resp: fetcher.Response{StatusCode: 200, Body: []byte("<html></html>")}},
		&fakeExtractor{record: sampleRecord()}, idx, nil,
	)

	_, err := p.Process(context.Background(), "://bad")
	require.ErrorIs(t, err, fetcher.ErrFetch)
}
