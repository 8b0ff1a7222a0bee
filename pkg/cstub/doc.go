/*
Package cstub keeps a C source file's function bodies in sync with the
declarations of its header.

	+-----------+      Extract      +--------------+
	|  foo.h    | ----------------> |  declared    |
	+-----------+                   +------+-------+
	                                       |  Missing
	+-----------+      Extract      +------v-------+      Render      +---------+
	|  foo.c    | ----------------> | implemented  | ---------------> |  stubs  |
	+-----------+                   +--------------+                  +---------+

🎯 Purpose:
  - Recognize function declarations and definitions in exercise templates
  - Diff the declared set against the implemented set
  - Append a placeholder body for every declared but unimplemented function

⚠️ Scope:
This is not a C parser. Signatures are recognized with a narrow pattern
grammar that covers auto generated exercise headers. Anything the grammar
does not match (macros, function pointers, variadics) is skipped without an
error, so a malformed declaration simply gets no stub.

🔍 Example:

	result := cstub.Fill(header, source)
	if result.WasModified {
		os.WriteFile("hello.c", result.Modified, 0644)
	}
*/
package cstub
