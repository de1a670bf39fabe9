package model

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-json-experiment/json"
	"github.com/vmihailenco/msgpack/v5"
)

// Format is the encoding of an entity dump.
type Format string

const (
	FormatJSON    Format = "json"
	FormatMsgpack Format = "msgpack"
)

// FormatFromPath はファイル拡張子からダンプの形式を判定する。
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".msgpack", ".mpk":
		return FormatMsgpack, nil
	default:
		return "", fmt.Errorf("unsupported model file extension: %q", filepath.Ext(path))
	}
}

// Load reads the entity dump stored at path.
func Load(path string) (*SDK, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read model: %w", err)
	}
	defer f.Close()

	return Decode(f, format)
}

// Decode はストリームからエンティティダンプをデコードする。
// MessagePack も JSON と同じフィールド名（json タグ）を使う。
func Decode(r io.Reader, format Format) (*SDK, error) {
	var sdk SDK

	switch format {
	case FormatJSON:
		if err := json.UnmarshalRead(r, &sdk); err != nil {
			return nil, fmt.Errorf("decode model: %w", err)
		}
	case FormatMsgpack:
		dec := msgpack.NewDecoder(r)
		dec.SetCustomStructTag("json")
		if err := dec.Decode(&sdk); err != nil {
			return nil, fmt.Errorf("decode model: %w", err)
		}
	default:
		return nil, fmt.Errorf("decode model: unknown format %q", format)
	}

	sdk.normalize()

	return &sdk, nil
}

// normalize はダンプ形式に依存しない不変条件を整える。
// ダンプ中の null 要素は取り除かれる。
func (s *SDK) normalize() {
	s.Packages = dropNil(s.Packages)
	for _, pack := range s.Packages {
		pack.Classes = dropNil(pack.Classes)
		pack.Structs = dropNil(pack.Structs)
		pack.Enums = dropNil(pack.Enums)
		pack.Functions = dropNil(pack.Functions)
		pack.Constants = dropNil(pack.Constants)
		pack.Defines = dropNil(pack.Defines)

		for _, c := range pack.Classes {
			c.IsClass = true
		}
		for _, fn := range pack.Functions {
			normalizeParams(fn)
		}
		for _, st := range pack.Classes {
			normalizeStruct(st)
		}
		for _, st := range pack.Structs {
			normalizeStruct(st)
		}
	}

	s.MissedStructs = dropNil(s.MissedStructs)
	for _, st := range s.MissedStructs {
		normalizeStruct(st)
	}
}

func normalizeStruct(s *Struct) {
	s.Fields = dropNil(s.Fields)
	s.Methods = dropNil(s.Methods)
	for _, fn := range s.Methods {
		normalizeParams(fn)
	}
}

func normalizeParams(fn *Function) {
	fn.Parameters = dropNil(fn.Parameters)
	for _, p := range fn.Parameters {
		if p.Kind == "" {
			p.Kind = ParamNormal
		}
	}
}

func dropNil[T any](items []*T) []*T {
	return slices.DeleteFunc(items, func(item *T) bool { return item == nil })
}
