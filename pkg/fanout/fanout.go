package fanout

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Map はitemsの各要素に対してfnを並行に実行し、入力と同じ順序で結果を返す。
// 同時実行数に上限は設けない。
// いずれかが失敗した場合は最初に発生したエラーを返す。残りの処理はキャンセルせず、
// 全ての完了を待ってから戻る。
func Map[T, R any](ctx context.Context, items []T, fn func(context.Context, T) (R, error)) ([]R, error) {
	results := make([]R, len(items))

	var g errgroup.Group
	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			r, err := fn(ctx, item)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Flatten はグループ化されたスライスを順序を保ったまま一つのスライスに連結する。
// 要素が無い場合も nil ではなく空スライスを返す。
func Flatten[T any](groups [][]T) []T {
	total := 0
	for _, g := range groups {
		total += len(g)
	}

	flat := make([]T, 0, total)
	for _, g := range groups {
		flat = append(flat, g...)
	}
	return flat
}
