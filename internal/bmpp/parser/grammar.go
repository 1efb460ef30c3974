package parser

import "github.com/alecthomas/participle/v2/lexer"

// The intermediate grammar below mirrors the EBNF directly; each pNode
// struct is converted into its internal/bmpp/ast counterpart by convert.go
// once participle has built the parse tree. Keeping this IR separate from
// the public ast package keeps participle's struct-tag grammar out of the
// AST's otherwise hand-written node types.

type pProgram struct {
	Pos       lexer.Position
	Protocols []*pProtocol `parser:"@@*"`
}

type pProtocol struct {
	Pos          lexer.Position
	Name         string               `parser:"@Ident \"<Protocol>\""`
	Annotation   *pAnnotation         `parser:"@@ \"{\""`
	Roles        *pRolesSection       `parser:"@@"`
	Parameters   *pParametersSection  `parser:"@@"`
	Interactions *pInteractionSection `parser:"@@ \"}\""`
}

type pAnnotation struct {
	Pos         lexer.Position
	Description string `parser:"\"(\" @String \")\""`
}

type pRolesSection struct {
	Pos   lexer.Position
	Roles []*pRoleDecl `parser:"\"roles\" @@ (\",\" @@)*"`
}

type pRoleDecl struct {
	Pos        lexer.Position
	Name       string       `parser:"@Ident \"<Agent>\""`
	Annotation *pAnnotation `parser:"@@"`
}

type pParametersSection struct {
	Pos    lexer.Position
	Params []*pParameterDecl `parser:"\"parameters\" @@ (\",\" @@)*"`
}

type pParameterDecl struct {
	Pos        lexer.Position
	Name       string       `parser:"@Ident \"<\""`
	BasicType  string       `parser:"@(\"String\" | \"Int\" | \"Float\" | \"Bool\") \">\""`
	Annotation *pAnnotation `parser:"@@"`
}

type pInteractionSection struct {
	Pos   lexer.Position
	Items []*pInteractionItem `parser:"@@+"`
}

type pInteractionItem struct {
	Pos         lexer.Position
	Standard    *pStandardInteraction `parser:"  @@"`
	Composition *pProtocolComposition `parser:"| @@"`
}

type pStandardInteraction struct {
	Pos        lexer.Position
	From       string        `parser:"@Ident \"->\""`
	To         string        `parser:"@Ident \":\""`
	Action     string        `parser:"@Ident \"<Action>\""`
	Annotation *pAnnotation  `parser:"@@ \"[\""`
	Flows      []*pParamFlow `parser:"(@@ (\",\" @@)*)? \"]\""`
}

type pParamFlow struct {
	Pos       lexer.Position
	Direction string `parser:"@(\"in\" | \"out\")"`
	Name      string `parser:"@Ident"`
}

// pProtocolComposition matches ProtocolComposition := Ident "<Enactment>"
// "[" CompParam ("," CompParam)* "]". The CompParam list interleaves bare
// role-binding identifiers and directed parameter flows; convert.go treats
// every bare identifier as a positional role binding and every entry with
// an in/out direction as a parameter flow.
type pProtocolComposition struct {
	Pos    lexer.Position
	Name   string        `parser:"@Ident \"<Enactment>\" \"[\""`
	Params []*pCompParam `parser:"(@@ (\",\" @@)*)? \"]\""`
}

type pCompParam struct {
	Pos  lexer.Position
	Flow *pParamFlow `parser:"  @@"`
	Bare string      `parser:"| @Ident"`
}
