package port

import "context"

// BackgroundProcessPort - фоновый процесс, живущий столько же, сколько приложение.
type BackgroundProcessPort interface {
	Start(ctx context.Context) error
	Close() error
}
