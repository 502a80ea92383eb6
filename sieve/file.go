package sieve

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"goldbach/utils"
	"io"
	"os"

	"golang.org/x/exp/mmap"
)

// 素数表文件格式
//
//	[0:8)   magic "GBPRIME1"
//	[8:16)  上限 (小端 uint64)
//	[16:24) 素数个数
//	[24:)   升序素数, 每个 8 字节小端
const (
	fileMagic  = "GBPRIME1"
	headerSize = 24
	chunkSize  = 4096 // 每次读取的素数数量
)

// WriteTo 以二进制格式写出素数表
func (t *Table) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var header [headerSize]byte
	copy(header[:8], fileMagic)
	binary.LittleEndian.PutUint64(header[8:], t.limit)
	binary.LittleEndian.PutUint64(header[16:], t.Count())
	if _, err := bw.Write(header[:]); err != nil {
		return 0, err
	}
	written := int64(headerSize)
	var buf [8]byte
	var err error
	t.Each(func(p uint64) bool {
		binary.LittleEndian.PutUint64(buf[:], p)
		if _, err = bw.Write(buf[:]); err != nil {
			return false
		}
		written += 8
		return true
	})
	if err != nil {
		return written, err
	}
	return written, bw.Flush()
}

// WriteFile 写出素数表文件
func (t *Table) WriteFile(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := t.WriteTo(file); err != nil {
		file.Close()
		return fmt.Errorf("写入素数表 %s: %w", path, err)
	}
	return file.Close()
}

// LoadFile 以内存映射方式读取素数表文件并重建位图
func LoadFile(path string) (*Table, error) {
	r, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return load(r, int64(r.Len()))
}

// load 从 ReaderAt 解析素数表
func load(r io.ReaderAt, size int64) (*Table, error) {
	var header [headerSize]byte
	if size < headerSize {
		return nil, fmt.Errorf("文件过短 %d: %w", size, ErrBadTableFile)
	}
	if _, err := r.ReadAt(header[:], 0); err != nil {
		return nil, err
	}
	if string(header[:8]) != fileMagic {
		return nil, fmt.Errorf("magic %q: %w", header[:8], ErrBadTableFile)
	}
	limit := binary.LittleEndian.Uint64(header[8:])
	count := binary.LittleEndian.Uint64(header[16:])
	if limit < 2 || limit > MaxLimit {
		return nil, fmt.Errorf("上限 %d: %w", limit, ErrBadTableFile)
	}
	if uint64(size-headerSize) != count*8 {
		return nil, fmt.Errorf("声明 %d 个素数, 实际 %d 字节: %w", count, size-headerSize, ErrBadTableFile)
	}
	t := newTable(limit)
	buf := make([]byte, chunkSize*8)
	var last uint64
	for read := uint64(0); read < count; {
		n := min(count-read, chunkSize)
		chunk := buf[:n*8]
		if _, err := r.ReadAt(chunk, headerSize+int64(read*8)); err != nil {
			return nil, err
		}
		for i := uint64(0); i < n; i++ {
			p := binary.LittleEndian.Uint64(chunk[i*8:])
			if p <= last || p > limit || (p != 2 && p%2 == 0) {
				return nil, fmt.Errorf("第 %d 个素数 %d: %w", read+i, p, ErrBadTableFile)
			}
			if p != 2 {
				t.odd.Set(utils.BitmapFlag(p/2), true)
			}
			last = p
		}
		read += n
	}
	t.buildSmall()
	return t, nil
}
