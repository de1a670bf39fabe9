package assertgen

import (
	"fmt"
	"io"
	"text/template"
)

// UnitTestFileName is the name of the rendered test translation unit.
const UnitTestFileName = "UnitTest.cpp"

const unitTestTemplate = `#include "pch.h"
#include "CppUnitTest.h"
#include "SDK.h"

using namespace Microsoft::VisualStudio::CppUnitTestFramework;

#define SDK_CHECK_OFFSET(targetClass, varName, expectedOffset) \
	Assert::AreEqual(uint32_t(expectedOffset), uint32_t(offsetof(targetClass, varName)), L#targetClass" -> "#varName".")

#define SDK_CHECK_SIZE(targetClass, expectedSize) \
	Assert::AreEqual(uint32_t(expectedSize), uint32_t(sizeof(targetClass)), L#targetClass" Has a wrong size.")

namespace SdkUnitTests
{
	TEST_CLASS(Sdk)
	{
	public:
{{- range .}}

		// {{.FullName}}
		TEST_METHOD({{.TestName}})
		{
			// Fields
{{- $type := .QualifiedName}}
{{- range .Offsets}}
			SDK_CHECK_OFFSET({{$type}}, {{.Field}}, {{hex .Offset}});
{{- end}}

			// Size
			SDK_CHECK_SIZE({{.QualifiedName}}, {{hex .Size}});
		}
{{- end}}
	};
}
`

var unitTestTmpl = template.Must(template.New("unittest").Funcs(template.FuncMap{
	"hex": func(v uint32) string { return fmt.Sprintf("0x%04X", v) },
}).Parse(unitTestTemplate))

// Render は表明をユニットテストの翻訳単位として w に書き出す。
func Render(w io.Writer, assertions []TypeAssertion) error {
	if err := unitTestTmpl.Execute(w, assertions); err != nil {
		return fmt.Errorf("render %s: %w", UnitTestFileName, err)
	}
	return nil
}
