package sieve

import "fmt"

// CountPairs 实测素数对数量
// 统计 k ∈ [0, w] 中 n-k 与 n+k 同为素数的个数, 要求 n-w >= 2 且 n+w 不超过上限
func (t *Table) CountPairs(n, w uint64) (uint64, error) {
	if n < 2 || w > n-2 {
		return 0, fmt.Errorf("n=%d w=%d 区间下界小于 2: %w", n, w, ErrOutOfRange)
	}
	if n+w > t.limit {
		return 0, fmt.Errorf("n=%d w=%d 超过上限 %d: %w", n, w, t.limit, ErrOutOfRange)
	}
	var count uint64
	for k := uint64(0); k <= w; k++ {
		// n-k 与 n+k 奇偶相同, 仅 n-k=n+k=2 时可以为偶数
		if (n-k)%2 == 0 && n-k != 2 {
			continue
		}
		if t.IsPrime(n-k) && t.IsPrime(n+k) {
			count++
		}
	}
	return count, nil
}
