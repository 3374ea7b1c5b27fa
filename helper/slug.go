package helper

import (
	"context"
	"fmt"

	"github.com/gosimple/slug"
)

const maxSlugAttempts = 50

// GenerateUniqueSlug tạo slug từ name, thêm hậu tố -1, -2... cho tới khi taken trả về false
func GenerateUniqueSlug(ctx context.Context, name string, taken func(ctx context.Context, s string) (bool, error)) (string, error) {
	base := slug.Make(name)
	if base == "" {
		return "", fmt.Errorf("cannot build slug from %q", name)
	}
	result := base
	i := 1

	for i <= maxSlugAttempts {
		exists, err := taken(ctx, result)
		if err != nil {
			return "", err
		}
		if !exists {
			return result, nil
		}
		result = fmt.Sprintf("%s-%d", base, i)
		i++
	}

	return "", fmt.Errorf("no free slug for %q after %d attempts", name, maxSlugAttempts)
}
