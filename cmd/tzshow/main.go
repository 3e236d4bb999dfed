// Command tzshow prints what a zone looks like at an instant: the
// canonical identifier, the offset in effect, the local reading and the
// enclosing transition.
//
//	tzshow -at 1751328000 America/New_York
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/lockels/temporal/iso"
	"github.com/lockels/temporal/tz"
	"github.com/lockels/temporal/tzdb"
)

var atFlag = flag.Int64("at", 0, "instant as Unix seconds (default: now)")

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) != 1 {
		fmt.Println("Usage: tzshow [-at unix-seconds] <zone>")
		os.Exit(1)
	}

	db := tzdb.Default()
	zone, err := tz.FromText(args[0], db)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	sec := *atFlag
	if sec == 0 {
		sec = time.Now().Unix()
	}
	at := iso.FromUnix(sec, 0)

	fmt.Println("zone:", zone.Identifier())

	offset, err := zone.OffsetNanosecondsAt(at, db)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	fmt.Printf("offset: %s (%d s)\n", tz.FromMinutes(int16(offset/60_000_000_000)), offset/1_000_000_000)

	local, err := zone.DateTimeAt(at, db)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	fmt.Printf("local: %04d-%02d-%02dT%02d:%02d:%02d\n",
		local.Date.Year, local.Date.Month, local.Date.Day,
		local.Time.Hour, local.Time.Minute, local.Time.Second)

	info, err := db.OffsetAndTransitionAt(zone.Identifier(), at)
	if err == nil && info.TransitionKnown {
		fmt.Println("since:", info.Transition)
	}

	start, err := zone.StartOfDay(local.Date, db)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	fmt.Println("start of local day:", start)
}
