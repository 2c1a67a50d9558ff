package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"shortforge/internal/adapter/repo"
	"shortforge/internal/domain"
	"shortforge/internal/providers/script"
	"shortforge/internal/providers/videogen"
)

type fakeScriptGen struct {
	text  string
	err   error
	panic bool
	calls int
}

func (f *fakeScriptGen) Generate(ctx context.Context, req script.Request) (*script.Result, error) {
	f.calls++
	if f.panic {
		panic("script generator exploded")
	}
	if f.err != nil {
		return nil, f.err
	}
	return &script.Result{Text: f.text, Model: "fake"}, nil
}

type fakeVideoGen struct {
	data  []byte
	err   error
	calls int
	last  videogen.Request
}

func (f *fakeVideoGen) Generate(ctx context.Context, req videogen.Request) (*videogen.Result, error) {
	f.calls++
	f.last = req
	if f.err != nil {
		return nil, f.err
	}
	return &videogen.Result{Data: f.data, MIME: "video/mp4"}, nil
}

type fakeBlobStore struct {
	name  string
	err   error
	calls int
}

func (f *fakeBlobStore) Store(ctx context.Context, data []byte) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.name, nil
}

func (f *fakeBlobStore) Fetch(ctx context.Context, name string) ([]byte, error) {
	return nil, domain.ErrNotFound
}

func defaultParams() Params {
	return Params{Topic: "cats", LengthSeconds: 30, AspectRatio: "9:16", BaseURL: "http://example.test"}
}

func TestExecutorRunSuccess(t *testing.T) {
	store := repo.NewJobStoreMemory()
	ctx := context.Background()
	id, _ := store.Create(ctx)

	scriptGen := &fakeScriptGen{text: "HOOK: cats rule."}
	videoGen := &fakeVideoGen{data: []byte("mp4 bytes")}
	blobs := &fakeBlobStore{name: "short_abc.mp4"}
	exec := NewExecutor(store, scriptGen, videoGen, blobs, zerolog.Nop())

	exec.Run(ctx, id, defaultParams())

	job, _ := store.Get(ctx, id)
	if job.Status != domain.JobStatusDone {
		t.Fatalf("status mismatch: got %q, message %q", job.Status, job.Message)
	}
	if job.Script != "HOOK: cats rule." {
		t.Fatalf("script not recorded: %q", job.Script)
	}
	if job.ArtifactID != "short_abc.mp4" {
		t.Fatalf("artifact mismatch: %q", job.ArtifactID)
	}
	if job.DownloadURL != "http://example.test/download/short_abc.mp4" {
		t.Fatalf("download url mismatch: %q", job.DownloadURL)
	}
	if job.Message != "" {
		t.Fatalf("message should be empty on done: %q", job.Message)
	}
	if !strings.Contains(videoGen.last.Instruction, "HOOK: cats rule.") {
		t.Fatalf("instruction not derived from script: %q", videoGen.last.Instruction)
	}
}

func TestExecutorRunScriptFailure(t *testing.T) {
	store := repo.NewJobStoreMemory()
	ctx := context.Background()
	id, _ := store.Create(ctx)

	scriptGen := &fakeScriptGen{err: errors.New("script: provider failure: model is loading")}
	videoGen := &fakeVideoGen{data: []byte("unused")}
	blobs := &fakeBlobStore{name: "unused"}
	exec := NewExecutor(store, scriptGen, videoGen, blobs, zerolog.Nop())

	exec.Run(ctx, id, defaultParams())

	job, _ := store.Get(ctx, id)
	if job.Status != domain.JobStatusError {
		t.Fatalf("status mismatch: got %q", job.Status)
	}
	if !strings.Contains(job.Message, "model is loading") {
		t.Fatalf("failure message not recorded: %q", job.Message)
	}
	if job.Script != "" {
		t.Fatalf("script should stay empty: %q", job.Script)
	}
	if videoGen.calls != 0 {
		t.Fatalf("video stage should not run, got %d calls", videoGen.calls)
	}
	if blobs.calls != 0 {
		t.Fatalf("storage stage should not run, got %d calls", blobs.calls)
	}
}

func TestExecutorRunVideoFailure(t *testing.T) {
	store := repo.NewJobStoreMemory()
	ctx := context.Background()
	id, _ := store.Create(ctx)

	scriptGen := &fakeScriptGen{text: "a script"}
	videoGen := &fakeVideoGen{err: errors.New("videogen: provider failure: quota exhausted")}
	blobs := &fakeBlobStore{name: "unused"}
	exec := NewExecutor(store, scriptGen, videoGen, blobs, zerolog.Nop())

	exec.Run(ctx, id, defaultParams())

	job, _ := store.Get(ctx, id)
	if job.Status != domain.JobStatusError {
		t.Fatalf("status mismatch: got %q", job.Status)
	}
	if job.Message == "" {
		t.Fatal("failure message missing")
	}
	if job.Script != "a script" {
		t.Fatalf("script from the completed stage should be kept: %q", job.Script)
	}
	if job.ArtifactID != "" {
		t.Fatalf("artifact should not be set: %q", job.ArtifactID)
	}
	if blobs.calls != 0 {
		t.Fatalf("storage stage should not run, got %d calls", blobs.calls)
	}
}

func TestExecutorRunStorageFailure(t *testing.T) {
	store := repo.NewJobStoreMemory()
	ctx := context.Background()
	id, _ := store.Create(ctx)

	scriptGen := &fakeScriptGen{text: "a script"}
	videoGen := &fakeVideoGen{data: []byte("mp4 bytes")}
	blobs := &fakeBlobStore{err: errors.New("disk full")}
	exec := NewExecutor(store, scriptGen, videoGen, blobs, zerolog.Nop())

	exec.Run(ctx, id, defaultParams())

	job, _ := store.Get(ctx, id)
	if job.Status != domain.JobStatusError {
		t.Fatalf("storage failure must not yield done, got %q", job.Status)
	}
	if !strings.Contains(job.Message, "disk full") {
		t.Fatalf("failure message not recorded: %q", job.Message)
	}
	if job.ArtifactID != "" || job.DownloadURL != "" {
		t.Fatalf("no artifact may be exposed on failure: %+v", job)
	}
}

func TestExecutorRunRecoversPanic(t *testing.T) {
	store := repo.NewJobStoreMemory()
	ctx := context.Background()
	id, _ := store.Create(ctx)

	scriptGen := &fakeScriptGen{panic: true}
	exec := NewExecutor(store, scriptGen, &fakeVideoGen{}, &fakeBlobStore{}, zerolog.Nop())

	exec.Run(ctx, id, defaultParams())

	job, _ := store.Get(ctx, id)
	if job.Status != domain.JobStatusError {
		t.Fatalf("panic must terminate the job as error, got %q", job.Status)
	}
	if !strings.Contains(job.Message, "script generator exploded") {
		t.Fatalf("panic detail not recorded: %q", job.Message)
	}
}

func TestDownloadURL(t *testing.T) {
	cases := []struct {
		base string
		want string
	}{
		{"http://localhost:3000", "http://localhost:3000/download/short_a.mp4"},
		{"http://localhost:3000/", "http://localhost:3000/download/short_a.mp4"},
		{"https://api.example.com//", "https://api.example.com/download/short_a.mp4"},
	}
	for _, tc := range cases {
		if got := DownloadURL(tc.base, "short_a.mp4"); got != tc.want {
			t.Fatalf("DownloadURL(%q) = %q, want %q", tc.base, got, tc.want)
		}
	}
}
