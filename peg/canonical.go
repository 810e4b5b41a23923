package peg

// canonicalSource is the textual form of defaultRules, one rule per line in
// the grammar's own concrete syntax. peg_test.go holds it to two
// properties: parsed as a whole, it must reconstruct defaultRules exactly
// (the fixed point); and each line, parsed alone, must contribute exactly
// the rule it names.
const canonicalSource = `
Ident <- [A-Za-z_] [A-Za-z0-9_]*
NonNegInt <- [0-9]+
WS <- [ \t\r\n]
Comment <- '#' (!'\n' .)* '\n'?
_ <- (WS / Comment)*
StrChar <- '\\' . / !'\'' !'\"' .
StrChars <- StrChar*
CCChar <- '\\' . / !']' .
%Range <- %CCChar '-' %CCChar
CharClassItem <- Range / CCChar
%CharClass <- '[' (%CharClassItem)* ']'
%Dot <- '.'
%String <- '\'' %StrChars '\'' / '\"' %StrChars '\"'
%Index <- %Ident ':' %NonNegInt
%Label <- %Ident
%Node <- '%' %Label
Group <- '(' _ %Choice _ ')'
Primary <- String / CharClass / Dot / Index / Label / Group
%ZeroOrOne <- %Primary '?'
%ZeroOrMore <- %Primary '*'
%OneOrMore <- %Primary '+'
Suffixed <- ZeroOrOne / ZeroOrMore / OneOrMore / Primary
%Lookahead <- '&' %Prefixed
%NotLookahead <- '!' %Prefixed
%Argument <- '%' %Prefixed
Prefixed <- Lookahead / NotLookahead / Argument / Suffixed
Sequence <- %Prefixed (_ !(Lhs _ '<-') %Prefixed)*
Choice <- %Sequence (_ '/' _ %Sequence)*
Lhs <- Node / Label
%Definition <- %Lhs _ '<-' _ %Choice
%start <- _ (%Definition _)* !.
`
