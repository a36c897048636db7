package storage

import "context"

type NoopStorage struct {
}

func (s *NoopStorage) WriteScan(ctx context.Context, sr *ScanRecord) error {
	return nil
}

func (s *NoopStorage) GetScans(ctx context.Context, input string) ([]*ScanRecord, error) {
	return nil, nil
}

func (s *NoopStorage) RemScans(ctx context.Context, input string) error {
	return nil
}

func (s *NoopStorage) Open(ctx context.Context) error {
	return nil
}

func (s *NoopStorage) Close(ctx context.Context) error {
	return nil
}
