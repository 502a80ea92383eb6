package maths

import "math"

// SmallPrimeLimit 小素数表上限
const SmallPrimeLimit = 1024

// 进程级只读常量表, 初始化后不再修改
var (
	smallPrimes    = buildSmallPrimes(SmallPrimeLimit) // 升序奇素数
	smallPrimeLogs = buildLogs(smallPrimes)            // log(p)
)

// buildSmallPrimes 埃氏筛生成 [3, limit) 的奇素数
func buildSmallPrimes(limit int) []uint64 {
	composite := make([]bool, limit)
	primes := make([]uint64, 0, limit/4)
	for i := 3; i < limit; i += 2 {
		if composite[i] {
			continue
		}
		primes = append(primes, uint64(i))
		for j := i * i; j < limit; j += 2 * i {
			composite[j] = true
		}
	}
	return primes
}

func buildLogs(primes []uint64) []Float {
	logs := make([]Float, len(primes))
	for i, p := range primes {
		logs[i] = math.Log(Float(p))
	}
	return logs
}

// SmallPrimeCount 小素数表长度
func SmallPrimeCount() int { return len(smallPrimes) }

// SmallPrime 第 i 个奇素数（从 3 开始）
func SmallPrime(i int) uint64 { return smallPrimes[i] }

// SmallPrimeLog 第 i 个奇素数的对数
func SmallPrimeLog(i int) Float { return smallPrimeLogs[i] }

// SmallPrimes 返回小素数表副本
func SmallPrimes() []uint64 { return append([]uint64(nil), smallPrimes...) }

// OddPrimorial 前 k 个奇素数之积, 溢出时返回 false
func OddPrimorial(k int) (uint64, bool) {
	if k < 0 || k > len(smallPrimes) {
		return 0, false
	}
	p := uint64(1)
	for i := 0; i < k; i++ {
		next, ok := MulChecked(p, smallPrimes[i])
		if !ok {
			return 0, false
		}
		p = next
	}
	return p, true
}
