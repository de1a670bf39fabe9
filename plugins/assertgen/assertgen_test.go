package assertgen

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/cgsdk/cppsdkgen/model"
)

func TestGenerate(t *testing.T) {
	t.Parallel()

	type want struct {
		assertions []TypeAssertion
		err        error
	}

	tests := []struct {
		name    string
		structs []*model.Struct
		want    want
	}{
		{
			name: "サイズ表明一つとフィールドごとのオフセット表明",
			structs: []*model.Struct{
				{
					NameCpp:       "FThing",
					FullName:      "ScriptStruct Game.Thing",
					Size:          0x18,
					InheritedSize: 0x8,
					Fields: []*model.Field{
						{Name: "A", Type: "int64", Offset: 0x8, Size: 0x8},
						{Name: "B", Type: "int64", Offset: 0x10, Size: 0x8},
					},
				},
			},
			want: want{
				assertions: []TypeAssertion{
					{
						FullName:      "ScriptStruct Game.Thing",
						TestName:      "ScriptStruct__Game__Thing",
						QualifiedName: "SDK::FThing",
						Size:          0x18,
						Offsets: []OffsetAssertion{
							{Field: "A", Offset: 0x8},
							{Field: "B", Offset: 0x10},
						},
					},
				},
			},
		},
		{
			name: "staticとビットフィールドは表明しない",
			structs: []*model.Struct{
				{
					NameCpp:  "AMy-Actor",
					FullName: "Class My-Game.My Actor",
					Size:     0x30,
					Fields: []*model.Field{
						{Name: "Instance", Offset: 0x0, Static: true},
						{Name: "bFlag : 1", Offset: 0x28, BitField: true},
						{Name: "bOther", Offset: 0x28, Bitfield: "1"},
						{Name: "Items[0x4]", Offset: 0x20},
					},
				},
			},
			want: want{
				assertions: []TypeAssertion{
					{
						FullName:      "Class My-Game.My Actor",
						TestName:      "Class__My_Game__My__Actor",
						QualifiedName: "SDK::AMy-Actor",
						Size:          0x30,
						Offsets:       []OffsetAssertion{{Field: "Items", Offset: 0x20}},
					},
				},
			},
		},
		{
			name: "uint32に収まらないサイズはエラー",
			structs: []*model.Struct{
				{NameCpp: "FHuge", Size: math.MaxUint32 + 1},
			},
			want: want{err: ErrOutOfRange},
		},
		{
			name: "負のオフセットはエラー",
			structs: []*model.Struct{
				{NameCpp: "FBroken", Size: 0x10, Fields: []*model.Field{{Name: "X", Offset: -4}}},
			},
			want: want{err: ErrOutOfRange},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Generate("SDK", tt.structs)
			if !errors.Is(err, tt.want.err) {
				t.Fatalf("Generate() error = %v, want %v", err, tt.want.err)
			}
			if diff := cmp.Diff(tt.want.assertions, got); diff != "" {
				t.Errorf("Generate() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCollect(t *testing.T) {
	t.Parallel()

	packages := []*model.Package{
		{CppName: "BasicTypes", IsPredefined: true, Structs: []*model.Struct{{NameCpp: "FString"}}},
		{CppName: "CoreUObject", Classes: []*model.Struct{{NameCpp: "UObject"}}, Structs: []*model.Struct{{NameCpp: "FGuid"}}},
		{CppName: "Engine", Classes: []*model.Struct{{NameCpp: "AActor"}}, Structs: []*model.Struct{{NameCpp: "FHitResult"}}},
	}

	var got []string
	for _, s := range Collect(packages) {
		got = append(got, s.NameCpp)
	}

	if diff := cmp.Diff([]string{"UObject", "AActor", "FGuid", "FHitResult"}, got); diff != "" {
		t.Errorf("Collect() mismatch (-want +got):\n%s", diff)
	}
}

func TestRender(t *testing.T) {
	t.Parallel()

	assertions := []TypeAssertion{
		{
			FullName:      "ScriptStruct Game.Thing",
			TestName:      "ScriptStruct__Game__Thing",
			QualifiedName: "SDK::FThing",
			Size:          0x18,
			Offsets: []OffsetAssertion{
				{Field: "A", Offset: 0x8},
				{Field: "B", Offset: 0x10},
			},
		},
	}

	var buf strings.Builder
	if err := Render(&buf, assertions); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	want := strings.Join([]string{
		"\tpublic:",
		"",
		"\t\t// ScriptStruct Game.Thing",
		"\t\tTEST_METHOD(ScriptStruct__Game__Thing)",
		"\t\t{",
		"\t\t\t// Fields",
		"\t\t\tSDK_CHECK_OFFSET(SDK::FThing, A, 0x0008);",
		"\t\t\tSDK_CHECK_OFFSET(SDK::FThing, B, 0x0010);",
		"",
		"\t\t\t// Size",
		"\t\t\tSDK_CHECK_SIZE(SDK::FThing, 0x0018);",
		"\t\t}",
		"\t};",
		"}",
		"",
	}, "\n")

	if !strings.HasSuffix(buf.String(), want) {
		t.Errorf("Render() tail mismatch (-want +got):\n%s", cmp.Diff(want, buf.String()))
	}
}
