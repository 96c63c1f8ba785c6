package test

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/stretchr/testify/mock"

	"yatube/internal/service"
)

// fakeStorage keeps uploaded images in memory under posts/<file name>.
type fakeStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string][]byte)}
}

func (s *fakeStorage) UploadImage(_ context.Context, fileName string, file io.Reader, _ int64, _ string) (string, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}

	objectName := "posts/" + fileName

	s.mu.Lock()
	s.objects[objectName] = data
	s.mu.Unlock()

	return objectName, nil
}

func (s *fakeStorage) DeleteImage(_ context.Context, objectName string) error {
	s.mu.Lock()
	delete(s.objects, objectName)
	s.mu.Unlock()
	return nil
}

func (s *fakeStorage) ImageURL(objectName string) string {
	if objectName == "" {
		return ""
	}
	return fmt.Sprintf("/media/%s", objectName)
}

func (s *fakeStorage) HealthCheck(context.Context) error {
	return nil
}

func (s *fakeStorage) has(objectName string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[objectName]
	return ok
}

type MockHealthService struct {
	mock.Mock
}

func (m *MockHealthService) Check(ctx context.Context) service.HealthReport {
	args := m.Called(ctx)
	return args.Get(0).(service.HealthReport)
}

type MockTablesService struct {
	mock.Mock
}

func (m *MockTablesService) GetRowCounts(ctx context.Context) (map[string]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}
