package utils

import "math/bits"

// BitmapFlag 位图标记
type BitmapFlag uint64

// Bitmap 位图标记实现
// @ 通过位图标记实现对状态的管理
type Bitmap interface {
	Set(bit BitmapFlag, flag bool)           // 设置标记
	Get(bit BitmapFlag) (flag bool)          // 获取标记
	Fill(flag bool)                          // 全部设置
	Size() uint64                            // 位图大小
	FlagCount(flag bool) uint64              // 标记数量
	Next(from BitmapFlag) (BitmapFlag, bool) // 从 from 开始的下一个置位
}

// bitmapImpl 实现Bitmap接口
type bitmapImpl struct {
	bits   []uint64
	length uint64
}

// NewBitmap 创建新的位图实例
func NewBitmap(size uint64) Bitmap {
	return &bitmapImpl{
		bits:   make([]uint64, (size+63)/64), // 计算需要的uint64数量
		length: size,
	}
}

func (b *bitmapImpl) Set(bit BitmapFlag, flag bool) {
	if uint64(bit) >= b.length {
		return
	}
	index, offset := bit/64, bit%64
	if flag {
		b.bits[index] |= 1 << offset
	} else {
		b.bits[index] &^= 1 << offset
	}
}

func (b *bitmapImpl) Get(bit BitmapFlag) bool {
	if uint64(bit) >= b.length {
		return false
	}
	return b.bits[bit/64]&(1<<(bit%64)) != 0
}

func (b *bitmapImpl) Fill(flag bool) {
	var v uint64
	if flag {
		v = ^uint64(0)
	}
	for i := range b.bits {
		b.bits[i] = v
	}
	// 清除末尾多余位
	if tail := b.length % 64; flag && tail != 0 {
		b.bits[len(b.bits)-1] = (1 << tail) - 1
	}
}

func (b *bitmapImpl) Size() uint64 {
	return b.length
}

func (b *bitmapImpl) FlagCount(flag bool) uint64 {
	var count uint64
	for _, w := range b.bits {
		count += uint64(bits.OnesCount64(w))
	}
	if flag {
		return count
	}
	return b.length - count
}

func (b *bitmapImpl) Next(from BitmapFlag) (BitmapFlag, bool) {
	if uint64(from) >= b.length {
		return 0, false
	}
	index := from / 64
	w := b.bits[index] &^ ((1 << (from % 64)) - 1)
	for {
		if w != 0 {
			bit := index*64 + BitmapFlag(bits.TrailingZeros64(w))
			return bit, uint64(bit) < b.length
		}
		index++
		if int(index) >= len(b.bits) {
			return 0, false
		}
		w = b.bits[index]
	}
}
