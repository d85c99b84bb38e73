package parens

type lexer struct {
	chars *charStream
}

// Lex splits input into tokens. Whitespace separates tokens but is never
// emitted.
func Lex(input string) ([]Token, error) {
	l := &lexer{chars: newCharStream(input)}
	return l.lex()
}

func (l *lexer) lex() ([]Token, error) {
	tokens := make([]Token, 0)
	for l.chars.has(0) {
		if l.peek(0, isWhitespace) {
			l.chars.advance()
			continue
		}
		tok, err := l.lexToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if l.peek(0, isWhitespace) {
			l.chars.advance()
		}
	}
	return tokens, nil
}

func (l *lexer) lexToken() (Token, error) {
	l.chars.reset()
	switch {
	case l.peek(0, isOperatorChar):
		return l.lexOperator(), nil
	case l.peek(0, isIdentifierLead):
		return l.lexIdentifier()
	case l.peek(0, isQuote):
		return l.lexString()
	case l.peek(0, isDigit):
		return l.lexNumber()
	case l.peek(0, isSign):
		if l.peek(1, isDigit) {
			return l.lexNumber()
		}
		return l.lexIdentifier()
	case l.peek(0, isDot):
		if l.peek(1, isSymbolChar) {
			return l.lexIdentifier()
		}
		return l.lexOperator(), nil
	default:
		return Token{}, l.errorf("invalid token")
	}
}

// lexOperator emits the rune at the cursor, which may span several bytes.
func (l *lexer) lexOperator() Token {
	tok := l.chars.emit(TokenOperator)
	for range len(tok.Literal) {
		l.chars.advance()
	}
	return tok
}

func (l *lexer) lexNumber() (Token, error) {
	l.match(isSign)
	if !l.peek(0, isDigit) {
		return Token{}, l.errorf("invalid number")
	}
	seenDot := false
	for {
		switch {
		case l.match(isDigit):
		case l.peek(0, isDot) && !seenDot && l.peek(1, isDigit):
			l.chars.advance()
			seenDot = true
		default:
			return l.chars.emit(TokenNumber), nil
		}
	}
}

func (l *lexer) lexIdentifier() (Token, error) {
	if !l.match(isSymbolChar) {
		return Token{}, l.errorf("invalid identifier")
	}
	for l.match(isSymbolChar) {
	}
	return l.chars.emit(TokenIdentifier), nil
}

func (l *lexer) lexString() (Token, error) {
	start := l.chars.index
	l.chars.advance()
	for {
		if !l.chars.has(0) {
			return Token{}, l.errorAt(start, "unterminated string")
		}
		switch {
		case l.match(isQuote):
			return l.chars.emit(TokenString), nil
		case l.peek(0, isBackslash):
			if !l.peek(1, isEscapeChar) {
				return Token{}, l.errorAt(start, "invalid escape sequence in string")
			}
			l.chars.advance()
			l.chars.advance()
		case l.peek(0, isApostrophe):
			return Token{}, l.errorAt(start, "unescaped apostrophe in string")
		default:
			l.chars.advance()
		}
	}
}

// peek reports whether the character at cursor+offset exists and belongs to
// class.
func (l *lexer) peek(offset int, class func(byte) bool) bool {
	c, err := l.chars.get(offset)
	return err == nil && class(c)
}

// match is peek at offset zero that also consumes the character.
func (l *lexer) match(class func(byte) bool) bool {
	if !l.peek(0, class) {
		return false
	}
	l.chars.advance()
	return true
}

func (l *lexer) errorf(msg string) error {
	return l.errorAt(l.chars.index, msg)
}

func (l *lexer) errorAt(offset int, msg string) error {
	return &LexError{Offset: offset, Msg: msg, source: l.chars.input}
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isSign(c byte) bool       { return c == '+' || c == '-' }
func isDot(c byte) bool        { return c == '.' }
func isQuote(c byte) bool      { return c == '"' }
func isApostrophe(c byte) bool { return c == '\'' }
func isBackslash(c byte) bool  { return c == '\\' }

// isSymbolChar is the identifier character class [A-Za-z0-9+\-*/:.!_?<>=].
func isSymbolChar(c byte) bool {
	if isLetter(c) || isDigit(c) {
		return true
	}
	switch c {
	case '+', '-', '*', '/', ':', '.', '!', '_', '?', '<', '>', '=':
		return true
	}
	return false
}

func isIdentifierLead(c byte) bool {
	if isLetter(c) {
		return true
	}
	switch c {
	case '*', '/', ':', '!', '_', '?', '<', '>', '=':
		return true
	}
	return false
}

// isOperatorChar matches everything that can neither start an identifier,
// number or string nor be whitespace: brackets and other punctuation.
func isOperatorChar(c byte) bool {
	return !isSymbolChar(c) && !isWhitespace(c) && !isQuote(c)
}

func isEscapeChar(c byte) bool {
	switch c {
	case 'b', 'n', 'r', 't', '\'', '"', '\\':
		return true
	}
	return false
}
