package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Policy はリトライ方針を表す
// 外部API呼び出しごとにパラメータを変えられるよう、呼び出し側から注入する
type Policy struct {
	// MaxAttempts は初回実行を含む最大試行回数
	MaxAttempts int
	// BaseInterval は初回リトライまでの待機時間（以降は指数的に倍増）
	BaseInterval time.Duration
	// MaxInterval は待機時間の上限（ゼロの場合は上限なし）
	MaxInterval time.Duration
}

// DefaultPolicy はデフォルトのリトライ方針を返す
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:  3,
		BaseInterval: time.Second,
		MaxInterval:  32 * time.Second,
	}
}

// Permanent はリトライしても回復しないエラーをマークする
func Permanent(err error) error {
	return backoff.Permanent(err)
}

// Do はポリシーに従って op をリトライ実行する
// 全試行が失敗した場合は最後のエラーを返す
func Do(ctx context.Context, policy Policy, op func(ctx context.Context) error) error {
	attempts := policy.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = policy.BaseInterval
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxElapsedTime = 0
	if policy.MaxInterval > 0 {
		b.MaxInterval = policy.MaxInterval
	}

	wrapped := backoff.WithContext(backoff.WithMaxRetries(b, uint64(attempts-1)), ctx)

	return backoff.Retry(func() error {
		return op(ctx)
	}, wrapped)
}
