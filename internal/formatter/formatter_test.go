package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreclean(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "strips_bold_markers",
			input:    "O autor **requer** a procedência",
			expected: "O autor requer a procedência",
		},
		{
			name:     "strips_bold_before_italic",
			input:    "**negrito** e *itálico* e ***ambos***",
			expected: "negrito e itálico e ambos",
		},
		{
			name:     "strips_underscore_emphasis",
			input:    "__forte__ e _leve_",
			expected: "forte e leve",
		},
		{
			name:     "strips_markdown_headers",
			input:    "# DOS FATOS\n## Subtítulo",
			expected: "DOS FATOS\nSubtítulo",
		},
		{
			name:     "keeps_link_text_drops_url",
			input:    "Conforme [Súmula 297](https://stj.jus.br/sumulas/297) do STJ",
			expected: "Conforme Súmula 297 do STJ",
		},
		{
			name:     "strips_inline_code_ticks",
			input:    "o artigo `186` do Código Civil",
			expected: "o artigo 186 do Código Civil",
		},
		{
			name:     "strips_leading_list_dashes",
			input:    "- primeiro pedido\n- segundo pedido",
			expected: "primeiro pedido\nsegundo pedido",
		},
		{
			name:     "strips_repeated_headers_in_one_pass",
			input:    "#  # DOS FATOS",
			expected: "DOS FATOS",
		},
		{
			name:     "strips_repeated_list_dashes_in_one_pass",
			input:    "- - primeiro pedido",
			expected: "primeiro pedido",
		},
		{
			name:     "strips_trailing_whitespace",
			input:    "linha com espaços   \noutra\t",
			expected: "linha com espaços\noutra",
		},
		{
			name:     "collapses_blank_runs",
			input:    "primeira\n\n\n\n\nsegunda",
			expected: "primeira\n\nsegunda",
		},
		{
			name:     "normalizes_crlf",
			input:    "linha um\r\nlinha dois",
			expected: "linha um\nlinha dois",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Preclean(tt.input))
		})
	}
}

func TestPreclean_Idempotent(t *testing.T) {
	inputs := []string{
		"**bold** and *italic*\n\n\n\n# TITLE\n- item\n",
		"EXCELENTÍSSIMO SENHOR DOUTOR JUIZ\n\ntexto simples",
		"#  # DOS FATOS\n- - primeiro pedido",
		"",
	}

	for _, input := range inputs {
		once := Preclean(input)
		twice := Preclean(once)
		assert.Equal(t, once, twice, "preclean must be idempotent on cleaned text")
	}
}

func TestFormat_LineRoles(t *testing.T) {
	input := "EXCELENTÍSSIMO SENHOR DOUTOR JUIZ\nAÇÃO DE COBRANÇA\nDOS FATOS\nO autor alega que..."

	paragraphs := Format(input)
	require.Len(t, paragraphs, 4)

	assert.Equal(t, RoleCentered, paragraphs[0].Role)
	assert.Equal(t, RoleCentered, paragraphs[1].Role)
	assert.Equal(t, RoleSectionTitle, paragraphs[2].Role)
	assert.Equal(t, RoleBody, paragraphs[3].Role)
}

func TestFormat_QuotationStripsMarker(t *testing.T) {
	paragraphs := Format("> STJ entendeu que...")

	require.Len(t, paragraphs, 1)
	assert.Equal(t, RoleQuotation, paragraphs[0].Role)
	assert.Equal(t, "STJ entendeu que...", paragraphs[0].Text)
}

func TestFormat_QualificationWindow(t *testing.T) {
	input := strings.Join([]string{
		"EXCELENTÍSSIMO SENHOR DOUTOR JUIZ DE DIREITO DA VARA CÍVEL",
		"",
		"JOÃO DA SILVA, brasileiro, casado, portador do CPF 000.000.000-00,",
		"residente na Rua das Flores, 100, vem propor a presente",
		"",
		"AÇÃO DE INDENIZAÇÃO POR DANOS MORAIS",
		"",
		"DOS FATOS",
		"",
		"Em 10 de janeiro o requerente...",
	}, "\n")

	paragraphs := Format(input)
	require.Len(t, paragraphs, 6)

	assert.Equal(t, RoleCentered, paragraphs[0].Role)
	// Mixed-case party block lines are qualification regardless of shape.
	assert.Equal(t, RoleQualification, paragraphs[1].Role)
	assert.Equal(t, RoleQualification, paragraphs[2].Role)
	// All-caps caption inside the window is centered, not a section title.
	assert.Equal(t, RoleCentered, paragraphs[3].Role)
	assert.Equal(t, RoleSectionTitle, paragraphs[4].Role)
	assert.Equal(t, RoleBody, paragraphs[5].Role)
}

func TestFormat_CaptionWindowUnboundedWithoutFactsHeading(t *testing.T) {
	// No facts heading: every all-caps line after the salutation is still a
	// candidate caption.
	input := strings.Join([]string{
		"EXCELENTÍSSIMO SENHOR DOUTOR JUIZ",
		"texto qualquer",
		"AÇÃO DECLARATÓRIA DE INEXISTÊNCIA DE DÉBITO",
	}, "\n")

	paragraphs := Format(input)
	require.Len(t, paragraphs, 3)
	assert.Equal(t, RoleCentered, paragraphs[0].Role)
	assert.Equal(t, RoleBody, paragraphs[1].Role)
	assert.Equal(t, RoleCentered, paragraphs[2].Role)
}

func TestFormat_SectionTitleVariants(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{name: "roman_numeral_dash", line: "II - DO DIREITO"},
		{name: "roman_numeral_dot", line: "III. DOS PEDIDOS"},
		{name: "of_the_heading", line: "DAS PRELIMINARES"},
		{name: "short_all_caps", line: "PEDIDOS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paragraphs := Format(tt.line)
			require.Len(t, paragraphs, 1)
			assert.Equal(t, RoleSectionTitle, paragraphs[0].Role)
		})
	}
}

func TestFormat_ChapterCounters(t *testing.T) {
	input := strings.Join([]string{
		"DOS FATOS",
		"parágrafo um",
		"DO DIREITO",
		"parágrafo dois",
	}, "\n")

	paragraphs := Format(input)
	require.Len(t, paragraphs, 4)

	assert.Equal(t, 1, paragraphs[0].Chapter)
	assert.Equal(t, 0, paragraphs[0].SubChapter)
	assert.Equal(t, 1, paragraphs[1].Chapter)
	assert.Equal(t, 2, paragraphs[2].Chapter)
	assert.Equal(t, 0, paragraphs[2].SubChapter)
	assert.Equal(t, 2, paragraphs[3].Chapter)
}

func TestFormat_EmptyInput(t *testing.T) {
	assert.Empty(t, Format(""))
	assert.Empty(t, Format("\n\n\n"))
	assert.Empty(t, Format("   \n\t\n"))
}

func TestFormat_BlankLinesNeverEmitted(t *testing.T) {
	paragraphs := Format("um\n\n\ndois\n\n")
	require.Len(t, paragraphs, 2)
	for _, p := range paragraphs {
		assert.NotEmpty(t, p.Text)
	}
}

func TestRenderHTML(t *testing.T) {
	paragraphs := []Paragraph{
		{Role: RoleCentered, Text: "AÇÃO DE COBRANÇA"},
		{Role: RoleBody, Text: "O autor <alega> que..."},
	}

	html := RenderHTML(paragraphs)

	assert.Contains(t, html, "text-align: center")
	assert.Contains(t, html, "text-indent: 1.25cm")
	assert.Contains(t, html, "O autor &lt;alega&gt; que...")
	assert.NotContains(t, html, "<alega>")
}
