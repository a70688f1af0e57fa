/*
Package semtok classifies Liquid syntax nodes into semantic tags for highlighting.

🎨 Overview:
-----------

	syntax.Node                        editor
	     |                               ^
	     v                               |
	+----------+     []Token      +-------------+
	|  Match   | ---------------> |   Encode    |
	+----------+                  +-------------+
	 one node +                    LSP relative
	 matched children              token stream

🔍 Rules:
--------

	Node kind            Role / child          Tag
	---------            ------------          ---
	assignment           variable_name         variable.definition
	capture              variable              variable.definition
	for, tablerow        item                  variable.parameter
	access               receiver (leftmost)   variable
	access               property (each)       property
	render, include,     string child          string.special
	section, sections
	argument             key                   variable.parameter
	range                "(" ".." ")"          punctuation.bracket, operator

Match looks at one node and the children its rule names. It never walks the
rest of the tree; traversal order belongs to the caller (see pkg/bridge).
Unknown kinds and malformed nodes yield no tokens.
*/
package semtok
