// rsmprobe entrypoint - delegates to cli.Execute.
package main

import (
	"github.com/beta6nine9/zabbix-rsm-sub001/internal/cli"
)

func main() {
	cli.Execute()
}
