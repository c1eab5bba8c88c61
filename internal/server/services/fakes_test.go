package services

import (
	"context"
	"errors"
	"sync"
)

type fakeUpstream struct {
	links   map[string]string
	files   map[string][]byte
	linkErr error
	fileErr error

	mu      sync.Mutex
	fetched []string
}

func (f *fakeUpstream) ResolveDownloadURL(_ context.Context, sourceURL string) (string, error) {
	if f.linkErr != nil {
		return "", f.linkErr
	}
	link, ok := f.links[sourceURL]
	if !ok {
		return "", errors.New("no link for " + sourceURL)
	}
	return link, nil
}

func (f *fakeUpstream) Fetch(_ context.Context, downloadURL string) ([]byte, error) {
	f.mu.Lock()
	f.fetched = append(f.fetched, downloadURL)
	f.mu.Unlock()

	if f.fileErr != nil {
		return nil, f.fileErr
	}
	return f.files[downloadURL], nil
}

type fakeCache struct {
	err   error
	mu    sync.Mutex
	files map[string][]byte
}

func (c *fakeCache) Put(_ context.Context, name string, data []byte) (string, error) {
	if c.err != nil {
		return "", c.err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.files == nil {
		c.files = map[string][]byte{}
	}
	c.files[name] = data
	return "/cache/" + name, nil
}

type observation struct {
	category string
	result   string
	size     int
}

type fakeRecorder struct {
	mu        sync.Mutex
	logins    []string
	downloads []observation
}

func (r *fakeRecorder) ObserveLogin(result string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logins = append(r.logins, result)
}

func (r *fakeRecorder) ObserveDownload(category, result string, size int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.downloads = append(r.downloads, observation{category, result, size})
}

type fakeIssuer struct {
	err error
}

func (i fakeIssuer) Issue(username string) (string, error) {
	if i.err != nil {
		return "", i.err
	}
	return "token-for-" + username, nil
}
