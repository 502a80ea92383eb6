// Package sieve 素数表与实测素数对计数。
package sieve

import (
	"errors"
	"fmt"
	"goldbach/utils"
)

// MaxLimit 筛表上限
const MaxLimit = 1 << 36

var (
	ErrOutOfRange   = errors.New("超出素数表范围")
	ErrBadTableFile = errors.New("素数表文件格式错误")
)

// Table 只读素数表
// 奇数位图第 i 位表示 2i+1 是否为素数, 创建后可在多个扫描间共享
type Table struct {
	limit uint64       // 上限（含）
	odd   utils.Bitmap // 奇数位图
	small []uint64     // 不超过 sqrt(limit) 的奇素数, 用于试除
}

// New 埃氏筛生成 [2, limit] 的素数表
func New(limit uint64) (*Table, error) {
	if limit < 2 || limit > MaxLimit {
		return nil, fmt.Errorf("筛表上限 %d: %w", limit, ErrOutOfRange)
	}
	t := newTable(limit)
	t.odd.Fill(true)
	t.odd.Set(0, false) // 1
	for i := uint64(3); i*i <= limit; i += 2 {
		if !t.odd.Get(utils.BitmapFlag(i / 2)) {
			continue
		}
		for j := i * i; j <= limit; j += 2 * i {
			t.odd.Set(utils.BitmapFlag(j/2), false)
		}
	}
	t.buildSmall()
	return t, nil
}

func newTable(limit uint64) *Table {
	return &Table{limit: limit, odd: utils.NewBitmap((limit + 1) / 2)}
}

// buildSmall 缓存试除用的小素数
func (t *Table) buildSmall() {
	t.small = t.small[:0]
	for p := uint64(3); p*p <= t.limit; p += 2 {
		if t.odd.Get(utils.BitmapFlag(p / 2)) {
			t.small = append(t.small, p)
		}
	}
}

// Limit 素数表上限
func (t *Table) Limit() uint64 { return t.limit }

// IsPrime x 是否为素数, x 超过上限时返回 false
func (t *Table) IsPrime(x uint64) bool {
	if x == 2 {
		return true
	}
	if x < 2 || x%2 == 0 || x > t.limit {
		return false
	}
	return t.odd.Get(utils.BitmapFlag(x / 2))
}

// Count 素数个数 π(limit)
func (t *Table) Count() uint64 {
	return t.odd.FlagCount(true) + 1
}

// Each 升序遍历全部素数, fn 返回 false 时停止
func (t *Table) Each(fn func(p uint64) bool) {
	if !fn(2) {
		return
	}
	for bit, ok := t.odd.Next(1); ok; bit, ok = t.odd.Next(bit + 1) {
		p := 2*uint64(bit) + 1
		if p > t.limit || !fn(p) {
			return
		}
	}
}

// Primes 全部素数
func (t *Table) Primes() []uint64 {
	primes := make([]uint64, 0, t.Count())
	t.Each(func(p uint64) bool {
		primes = append(primes, p)
		return true
	})
	return primes
}

// OddDivisors n 的互异奇素因子
func (t *Table) OddDivisors(n uint64) ([]uint64, error) {
	if n > t.limit {
		return nil, fmt.Errorf("分解 %d 超过上限 %d: %w", n, t.limit, ErrOutOfRange)
	}
	for n > 0 && n%2 == 0 {
		n /= 2
	}
	var divisors []uint64
	for _, p := range t.small {
		if p*p > n {
			break
		}
		if n%p == 0 {
			divisors = append(divisors, p)
			for n%p == 0 {
				n /= p
			}
		}
	}
	if n > 1 {
		divisors = append(divisors, n)
	}
	return divisors, nil
}
