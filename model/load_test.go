package model

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/vmihailenco/msgpack/v5"
)

const sampleDump = `{
  "gameName": "Sample",
  "gameVersion": "1.0",
  "namespace": "SDK",
  "packages": [
    {
      "name": "CoreUObject",
      "cppName": "CoreUObject",
      "classes": [
        {
          "name": "Object",
          "nameCpp": "UObject",
          "fullName": "Class CoreUObject.Object",
          "size": 40,
          "methods": [
            {
              "name": "ExecuteUbergraph",
              "fullName": "Function CoreUObject.Object.ExecuteUbergraph",
              "parameters": [{"name": "EntryPoint", "type": "int32"}]
            }
          ]
        }
      ],
      "structs": [
        {"name": "Vector", "nameCpp": "FVector", "fullName": "ScriptStruct CoreUObject.Vector", "size": 12}
      ]
    }
  ]
}`

func TestDecode(t *testing.T) {
	t.Parallel()

	want := &SDK{
		GameName:    "Sample",
		GameVersion: "1.0",
		Namespace:   "SDK",
		Packages: []*Package{
			{
				Name:    "CoreUObject",
				CppName: "CoreUObject",
				Classes: []*Struct{
					{
						Name:     "Object",
						NameCpp:  "UObject",
						FullName: "Class CoreUObject.Object",
						IsClass:  true,
						Size:     40,
						Methods: []*Function{
							{
								Name:     "ExecuteUbergraph",
								FullName: "Function CoreUObject.Object.ExecuteUbergraph",
								Parameters: []*Parameter{
									{Name: "EntryPoint", Type: "int32", Kind: ParamNormal},
								},
							},
						},
					},
				},
				Structs: []*Struct{
					{Name: "Vector", NameCpp: "FVector", FullName: "ScriptStruct CoreUObject.Vector", Size: 12},
				},
			},
		},
	}

	t.Run("JSONのダンプを読み込みクラスとして正規化する", func(t *testing.T) {
		t.Parallel()

		got, err := Decode(strings.NewReader(sampleDump), FormatJSON)
		if err != nil {
			t.Fatalf("Decode() error = %v", err)
		}
		if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("diff(-want +got): %s", diff)
		}
	})

	t.Run("MessagePackのダンプもjsonタグのフィールド名で読み込む", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		enc := msgpack.NewEncoder(&buf)
		enc.SetCustomStructTag("json")
		if err := enc.Encode(want); err != nil {
			t.Fatalf("Encode() error = %v", err)
		}

		got, err := Decode(&buf, FormatMsgpack)
		if err != nil {
			t.Fatalf("Decode() error = %v", err)
		}
		if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("diff(-want +got): %s", diff)
		}
	})

	t.Run("null要素は読み飛ばす", func(t *testing.T) {
		t.Parallel()

		const dump = `{
  "gameName": "Sample",
  "packages": [
    null,
    {
      "cppName": "Engine",
      "classes": [null, {"nameCpp": "AActor", "fields": [null], "methods": [null, {"name": "Tick", "parameters": [null, {"name": "DeltaSeconds", "type": "float"}]}]}],
      "structs": [null],
      "enums": [null],
      "functions": [null]
    }
  ],
  "missedStructs": [null, {"nameCpp": "FMissing", "methods": [null]}]
}`

		got, err := Decode(strings.NewReader(dump), FormatJSON)
		if err != nil {
			t.Fatalf("Decode() error = %v", err)
		}

		want := &SDK{
			GameName: "Sample",
			Packages: []*Package{
				{
					CppName: "Engine",
					Classes: []*Struct{
						{
							NameCpp: "AActor",
							IsClass: true,
							Methods: []*Function{
								{Name: "Tick", Parameters: []*Parameter{{Name: "DeltaSeconds", Type: "float", Kind: ParamNormal}}},
							},
						},
					},
				},
			},
			MissedStructs: []*Struct{{NameCpp: "FMissing"}},
		}
		if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("diff(-want +got): %s", diff)
		}
	})

	t.Run("不正なJSONはエラー", func(t *testing.T) {
		t.Parallel()

		if _, err := Decode(strings.NewReader("{"), FormatJSON); err == nil {
			t.Error("error = nil, want error")
		}
	})
}

func TestFormatFromPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		path    string
		want    Format
		wantErr bool
	}{
		{name: "json拡張子", path: "dump/sdk.json", want: FormatJSON},
		{name: "msgpack拡張子", path: "dump/sdk.msgpack", want: FormatMsgpack},
		{name: "大文字の拡張子", path: "SDK.MPK", want: FormatMsgpack},
		{name: "未対応の拡張子はエラー", path: "sdk.xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := FormatFromPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("diff(-want +got): %s", diff)
			}
		})
	}
}

func TestIndex(t *testing.T) {
	t.Parallel()

	shared := &Struct{NameCpp: "FShared"}
	sharedClass := &Struct{NameCpp: "FShared", IsClass: true}
	actor := &Struct{NameCpp: "AActor", IsClass: true}
	core := &Package{CppName: "CoreUObject", Structs: []*Struct{shared}, Enums: []*Enum{{Name: "EMode"}}}
	engine := &Package{CppName: "Engine", Classes: []*Struct{actor, sharedClass}}

	idx := NewIndex([]*Package{core, engine})

	if got := idx.StructOrClass("FShared"); got != shared {
		t.Errorf("StructOrClass() = %p, want struct %p", got, shared)
	}
	if got := idx.ClassOrStruct("FShared"); got != sharedClass {
		t.Errorf("ClassOrStruct() = %p, want class %p", got, sharedClass)
	}
	if got := idx.ClassOrStruct("Missing"); got != nil {
		t.Errorf("ClassOrStruct() = %v, want nil", got)
	}
	if got := idx.PackageByTypeName("Engine"); got != engine {
		t.Errorf("PackageByTypeName(Engine) = %v, want engine", got)
	}
	if got := idx.PackageByTypeName("AActor"); got != engine {
		t.Errorf("PackageByTypeName(AActor) = %v, want engine", got)
	}
	if got := idx.PackageByTypeName("EMode"); got != core {
		t.Errorf("PackageByTypeName(EMode) = %v, want core", got)
	}
	if got := idx.PackageByTypeName("Unknown"); got != nil {
		t.Errorf("PackageByTypeName(Unknown) = %v, want nil", got)
	}

	// 名前の代表は最初の構造体だが、同名のクラスは自分のパッケージに属する
	if got := idx.Owner("FShared"); got != core {
		t.Errorf("Owner(FShared) = %v, want core", got)
	}
	if got := idx.OwnerOf(sharedClass); got != engine {
		t.Errorf("OwnerOf(class FShared) = %v, want engine", got)
	}
	if got := idx.OwnerOf(shared); got != core {
		t.Errorf("OwnerOf(struct FShared) = %v, want core", got)
	}
	if got := idx.OwnerOf(&Struct{NameCpp: "FShared"}); got != nil {
		t.Errorf("OwnerOf(unindexed) = %v, want nil", got)
	}
}

func TestStruct_AddDependency(t *testing.T) {
	t.Parallel()

	s := &Struct{NameCpp: "FSelf"}
	s.AddDependency("FOther")
	s.AddDependency("FSelf")
	s.AddDependency("FOther")
	s.AddDependency("")

	if diff := cmp.Diff([]Key{"FOther"}, s.Dependencies); diff != "" {
		t.Errorf("diff(-want +got): %s", diff)
	}
}
