package cppgen

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/cgsdk/cppsdkgen/cppast"
	"github.com/cgsdk/cppsdkgen/model"
)

func newTestSDK() *model.SDK {
	return &model.SDK{
		GameName:              "Sample",
		GameVersion:           "4.27.2",
		Namespace:             "SDK",
		GameModule:            "Sample-Win64-Shipping.exe",
		GObjectsOffset:        0x4A1B2C0,
		GNamesOffset:          0x49F0A80,
		GWorldOffset:          0x4B8C6D8,
		GlobalMemberAlignment: 8,
		Packages: []*model.Package{
			{
				Name:         "BasicTypes",
				CppName:      "BasicTypes",
				IsPredefined: true,
				Functions: []*model.Function{
					{
						Name: "InitSdk",
						Parameters: []*model.Parameter{
							{Name: "moduleName", Type: "const std::string&"},
						},
						Body: []string{"return InitSdk(moduleName, 0, 0);"},
					},
					{
						Name: "InitSdk",
						Parameters: []*model.Parameter{
							{Kind: model.ParamReturn, Type: "bool"},
						},
						Body: []string{
							"return InitSdk(\"MODULE_NAME\", GOBJ_OFFSET, GNAME_OFFSET, GWORLD_OFFSET);",
						},
					},
				},
			},
			{
				Name:    "Engine",
				CppName: "Engine",
				Enums: []*model.Enum{
					{Name: "ENetRole", FullName: "Enum Engine.ENetRole", Type: "uint8_t", Values: []model.EnumValue{{Name: "ROLE_None", Value: "0"}}},
				},
				Constants: []*model.Constant{{Name: "MaxPlayers", Type: "int32_t", Value: "16"}},
				Defines:   []*model.Define{{Name: "ENGINE_VERSION", Value: "427"}},
				Structs:   []*model.Struct{{NameCpp: "FVector", FullName: "ScriptStruct CoreUObject.Vector", Size: 0xC}},
				Classes: []*model.Struct{
					{
						NameCpp:  "AActor",
						FullName: "Class Engine.Actor",
						IsClass:  true,
						Size:     0x220,
						Methods:  []*model.Function{{Name: "K2_DestroyActor", FullName: "Function Engine.Actor.K2_DestroyActor"}},
					},
				},
			},
		},
	}
}

func TestPlugin_ConvertPackage(t *testing.T) {
	t.Parallel()

	sdk := newTestSDK()
	p := New(sdk, DefaultOptions())
	out := p.ConvertPackage(sdk.Packages[1])

	t.Run("パッケージのヘッダ情報", func(t *testing.T) {
		t.Parallel()

		cp := out.Package
		want := &cppast.Package{
			Name:                  "Engine",
			HeadingComment:        []string{"Name: Sample", "Version: 4.27.2"},
			NameSpace:             "SDK",
			Pragmas:               []string{"once"},
			Includes:              []string{`"pch.h"`},
			PackageHeaderIncludes: []string{`"Engine_Params.h"`},
			BeforeNameSpace:       "#ifdef _MSC_VER\n\t#pragma pack(push, 0x08)\n#endif",
			AfterNameSpace:        "#ifdef _MSC_VER\n\t#pragma pack(pop)\n#endif",
		}
		got := *cp
		got.Defines, got.Constants, got.Enums, got.Structs, got.Functions = nil, nil, nil, nil, nil
		if diff := cmp.Diff(want, &got); diff != "" {
			t.Errorf("Package mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("構造体のあとにクラスが並ぶ", func(t *testing.T) {
		t.Parallel()

		var names []string
		for _, s := range out.Package.Structs {
			names = append(names, s.Name)
		}
		if diff := cmp.Diff([]string{"FVector", "AActor"}, names); diff != "" {
			t.Errorf("Structs mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("列挙型と定数とdefineを変換する", func(t *testing.T) {
		t.Parallel()

		wantEnums := []*cppast.Enum{
			{Name: "ENetRole", Type: "uint8_t", IsClass: true, Values: []cppast.NameValue{{Name: "ROLE_None", Value: "0"}}, Comments: []string{"Enum Engine.ENetRole"}},
		}
		if diff := cmp.Diff(wantEnums, out.Package.Enums); diff != "" {
			t.Errorf("Enums mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]*cppast.Constant{{Name: "MaxPlayers", Type: "int32_t", Value: "16"}}, out.Package.Constants); diff != "" {
			t.Errorf("Constants mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]*cppast.Define{{Name: "ENGINE_VERSION", Value: "427"}}, out.Package.Defines); diff != "" {
			t.Errorf("Defines mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("パラメータ構造体のファイル", func(t *testing.T) {
		t.Parallel()

		if out.Params == nil {
			t.Fatal("Params = nil")
		}
		if out.Params.Name != "Engine_Params" {
			t.Errorf("Params.Name = %q", out.Params.Name)
		}
		if len(out.Params.Includes) != 0 {
			t.Errorf("Params.Includes = %v, want none with precompiled headers", out.Params.Includes)
		}
		if len(out.Params.Structs) != 1 || out.Params.Structs[0].Name != "AActor_K2_DestroyActor_Params" {
			t.Errorf("Params.Structs = %v", out.Params.Structs)
		}
	})
}

func TestPlugin_ConvertPackage_BasicTypes(t *testing.T) {
	t.Parallel()

	sdk := newTestSDK()
	opts := DefaultOptions()
	opts.OffsetsOnly = true
	opts.PrecompileSyntax = false

	out := New(sdk, opts).ConvertPackage(sdk.Packages[0])

	if out.Params != nil {
		t.Errorf("Params = %v, want nil for a predefined package", out.Params)
	}
	if diff := cmp.Diff([]string{"OffsetsOnly"}, out.Package.Conditions); diff != "" {
		t.Errorf("Conditions mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{`"../SDK.h"`}, out.Package.Includes); diff != "" {
		t.Errorf("Includes mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"class UObject"}, out.Package.Forwards); diff != "" {
		t.Errorf("Forwards mismatch (-want +got):\n%s", diff)
	}

	want := [][]string{
		{"return InitSdk(moduleName, 0, 0);"},
		{"return InitSdk(\"Sample-Win64-Shipping.exe\", 0x4A1B2C0, 0x49F0A80, 0x4B8C6D8);"},
	}
	for i, fn := range out.Package.Functions {
		if diff := cmp.Diff(want[i], fn.Body); diff != "" {
			t.Errorf("Functions[%d].Body mismatch (-want +got):\n%s", i, diff)
		}
	}

	// エンティティ側の本体は置き換えない
	if got := sdk.Packages[0].Functions[1].Body[0]; got != "return InitSdk(\"MODULE_NAME\", GOBJ_OFFSET, GNAME_OFFSET, GWORLD_OFFSET);" {
		t.Errorf("entity body was modified: %q", got)
	}
}

func TestPlugin_ConvertPackage_OffsetsOnlySkipsParams(t *testing.T) {
	t.Parallel()

	sdk := newTestSDK()
	opts := DefaultOptions()
	opts.OffsetsOnly = true

	out := New(sdk, opts).ConvertPackage(sdk.Packages[1])

	if out.Params != nil {
		t.Error("Params generated with OffsetsOnly")
	}
	if len(out.Package.PackageHeaderIncludes) != 0 {
		t.Errorf("PackageHeaderIncludes = %v", out.Package.PackageHeaderIncludes)
	}
}

func TestPlugin_GenerateMissing(t *testing.T) {
	t.Parallel()

	t.Run("欠けた構造体がなければnil", func(t *testing.T) {
		t.Parallel()

		got, err := New(&model.SDK{}, DefaultOptions()).GenerateMissing()
		if err != nil || got != nil {
			t.Errorf("GenerateMissing() = %v, %v, want nil, nil", got, err)
		}
	})

	t.Run("サイズ分の詰め物を追加する", func(t *testing.T) {
		t.Parallel()

		sdk := &model.SDK{
			Namespace:     "SDK",
			MissedStructs: []*model.Struct{{NameCpp: "FUnknownStruct", FullName: "ScriptStruct Game.UnknownStruct", Size: 0x1C}},
		}

		got, err := New(sdk, DefaultOptions()).GenerateMissing()
		if err != nil {
			t.Fatalf("GenerateMissing() error = %v", err)
		}
		if got.Name != MissingPackageName || got.NameSpace != "SDK" {
			t.Errorf("package = (%q, %q)", got.Name, got.NameSpace)
		}

		want := []*cppast.Field{{Name: "UnknownData", Type: "unsigned char", ArrayDim: "0x1C"}}
		if diff := cmp.Diff(want, got.Structs[0].Fields); diff != "" {
			t.Errorf("Fields mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("負のサイズは変換できない", func(t *testing.T) {
		t.Parallel()

		sdk := &model.SDK{MissedStructs: []*model.Struct{{NameCpp: "FBroken", Size: -1}}}
		if _, err := New(sdk, DefaultOptions()).GenerateMissing(); err == nil {
			t.Error("GenerateMissing() error = nil, want size error")
		}
	})
}

func TestPadMissing_StructNotFound(t *testing.T) {
	t.Parallel()

	structs := []*cppast.Struct{{Name: "FRenamed"}}
	missed := []*model.Struct{{NameCpp: "FOriginal", Size: 0x10}}

	err := padMissing(structs, missed)
	if !errors.Is(err, ErrStructNotFound) {
		t.Errorf("padMissing() error = %v, want ErrStructNotFound", err)
	}
}
