package ilist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type node struct {
	Elem[node]
	val int
}

func TestPushBackOrder(t *testing.T) {
	var l List[node]
	a := &node{val: 1}
	b := &node{val: 2}
	c := &node{val: 3}
	l.PushBack(a)
	l.PushBack(b)
	l.PushBack(c)

	assert.Equal(t, 3, l.Len())
	var got []int
	for e := l.Front(); e != nil; e = Next(e) {
		got = append(got, e.val)
	}
	assert.Equal(t, []int{1, 2, 3}, got)
}

func TestRemoveMiddle(t *testing.T) {
	var l List[node]
	a := &node{val: 1}
	b := &node{val: 2}
	c := &node{val: 3}
	l.PushBack(a)
	l.PushBack(b)
	l.PushBack(c)

	l.Remove(b)
	assert.Equal(t, 2, l.Len())
	assert.Equal(t, a, l.Front())
	assert.Equal(t, c, l.Back())
	assert.Equal(t, c, Next(a))
	assert.Equal(t, a, Prev(c))
}

func TestPopFront(t *testing.T) {
	var l List[node]
	a := &node{val: 1}
	b := &node{val: 2}
	l.PushBack(a)
	l.PushBack(b)

	got := l.PopFront()
	assert.Equal(t, a, got)
	assert.Equal(t, 1, l.Len())
	assert.Equal(t, b, l.Front())
}

func TestPushFront(t *testing.T) {
	var l List[node]
	a := &node{val: 1}
	b := &node{val: 2}
	l.PushBack(a)
	l.PushFront(b)

	assert.Equal(t, b, l.Front())
	assert.Equal(t, a, l.Back())
}

func TestEmpty(t *testing.T) {
	var l List[node]
	assert.True(t, l.Empty())
	assert.Nil(t, l.Front())
	assert.Nil(t, l.PopFront())
}
