// Package kvstore is the persistence layer of the application: a flat
// key-value store of string values. Collections are serialized as whole
// JSON documents under a single key and rewritten in full on every
// mutation. Apply executes a group of writes in one transaction so that
// multi-key updates (the event delete cascade) cannot be observed half
// done.
package kvstore

import "context"

type Op struct {
	Key    string
	Value  string
	Delete bool
}

type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Apply(ctx context.Context, ops []Op) error
	Close() error
}

func SetOp(key, value string) Op {
	return Op{Key: key, Value: value}
}

func DeleteOp(key string) Op {
	return Op{Key: key, Delete: true}
}
