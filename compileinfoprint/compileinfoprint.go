// compileinfoprint is imported for the side effect of printing the compileinfo
// to os.Stderr
package compileinfoprint

import "github.com/gwasmisc/gwasmisc/compileinfo"

func init() {
	compileinfo.PrintToStdErr()
}
