// Package htmltest provides testing helpers for rendered nodes.
//
// Assertions render the node, parse the output with golang.org/x/net/html
// and report the markup on failure:
//
//	func TestSignup(t *testing.T) {
//	    f := buildSignup(t)
//	    htmltest.ExpectElement(t, f, "fieldset")
//	    htmltest.ExpectAttribute(t, f, "name", "address[city]")
//	    htmltest.ExpectNotContains(t, f, `class="errors"`)
//	}
package htmltest
