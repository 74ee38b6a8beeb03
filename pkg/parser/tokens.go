package parser

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// TokenKind classifies a lexical token for normalization purposes.
type TokenKind int

const (
	TokenOther   TokenKind = iota // keywords, operators, punctuation
	TokenIdent                    // identifiers of any flavor
	TokenNumber                   // numeric literals
	TokenString                   // string/char literals
	TokenComment                  // comments (structural, dropped on normalize)
)

func (k TokenKind) String() string {
	switch k {
	case TokenIdent:
		return "ident"
	case TokenNumber:
		return "number"
	case TokenString:
		return "string"
	case TokenComment:
		return "comment"
	default:
		return "other"
	}
}

// Token is a single lexical unit with its 1-based source line.
type Token struct {
	Kind TokenKind
	Text string
	Line uint32
}

// identTypes covers identifier node types across supported grammars.
var identTypes = map[string]bool{
	"identifier":                            true,
	"field_identifier":                      true,
	"type_identifier":                       true,
	"package_identifier":                    true,
	"property_identifier":                   true,
	"shorthand_property_identifier":         true,
	"shorthand_property_identifier_pattern": true,
	"statement_identifier":                  true,
	"label_name":                            true,
	"constant":                              true,
	"instance_variable":                     true,
	"class_variable":                        true,
	"global_variable":                       true,
}

// numberTypes covers numeric literal node types across supported grammars.
var numberTypes = map[string]bool{
	"int_literal":                    true,
	"float_literal":                  true,
	"integer":                        true,
	"float":                          true,
	"number":                         true,
	"integer_literal":                true,
	"imaginary_literal":              true,
	"decimal_integer_literal":        true,
	"hex_integer_literal":            true,
	"octal_integer_literal":          true,
	"binary_integer_literal":         true,
	"decimal_floating_point_literal": true,
	"hex_floating_point_literal":     true,
}

// stringTypes covers string-like literal node types. These nodes have
// children (quotes, escape sequences, interpolations) that must be
// collected as a single token rather than descended into.
var stringTypes = map[string]bool{
	"string":                     true,
	"string_literal":             true,
	"interpreted_string_literal": true,
	"raw_string_literal":         true,
	"template_string":            true,
	"char_literal":               true,
	"character_literal":          true,
	"rune_literal":               true,
	"heredoc_body":               true,
}

// commentTypes covers comment node types across supported grammars.
var commentTypes = map[string]bool{
	"comment":       true,
	"line_comment":  true,
	"block_comment": true,
}

// GetTokens flattens a parse tree into its lexical token stream, in source
// order, with each token classified for later normalization.
func GetTokens(result *ParseResult) []Token {
	var tokens []Token

	WalkTyped(result.Tree.RootNode(), result.Source, func(node *sitter.Node, nodeType string, source []byte) bool {
		if stringTypes[nodeType] {
			tokens = append(tokens, Token{
				Kind: TokenString,
				Text: GetNodeText(node, source),
				Line: node.StartPoint().Row + 1,
			})
			return false // don't descend into quote/escape children
		}

		if commentTypes[nodeType] {
			tokens = append(tokens, Token{
				Kind: TokenComment,
				Text: GetNodeText(node, source),
				Line: node.StartPoint().Row + 1,
			})
			return false
		}

		if node.ChildCount() > 0 {
			return true
		}

		text := GetNodeText(node, source)
		if text == "" {
			return true
		}

		kind := TokenOther
		switch {
		case identTypes[nodeType]:
			kind = TokenIdent
		case numberTypes[nodeType]:
			kind = TokenNumber
		}

		tokens = append(tokens, Token{
			Kind: kind,
			Text: text,
			Line: node.StartPoint().Row + 1,
		})
		return true
	})

	return tokens
}

// TokensInRange returns the tokens whose line falls within the 1-based
// inclusive [start, end] range.
func TokensInRange(tokens []Token, start, end uint32) []Token {
	var out []Token
	for _, t := range tokens {
		if t.Line >= start && t.Line <= end {
			out = append(out, t)
		}
	}
	return out
}
