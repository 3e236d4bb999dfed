// Command tzresolve maps a local date-time in a zone to the absolute
// instants it can denote, and resolves it to one under a disambiguation
// policy.
//
//	tzresolve -zone America/New_York -policy earlier "2025-11-02T01:30"
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/lockels/temporal/iso"
	"github.com/lockels/temporal/tz"
	"github.com/lockels/temporal/tzdb"
)

var (
	zoneFlag   = flag.String("zone", "UTC", "time zone identifier or offset")
	policyFlag = flag.String("policy", "compatible", "disambiguation policy: compatible, earlier, later or reject")
)

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) != 1 {
		fmt.Println("Usage: tzresolve [-zone zone] [-policy policy] <local date-time>")
		os.Exit(1)
	}

	policy, err := tz.ParseDisambiguation(*policyFlag)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	db := tzdb.Default()
	zone, err := tz.FromIdentifier(*zoneFlag, db)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	dt, err := parseDateTime(args[0])
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	candidates, err := zone.PossibleInstantsFor(dt, db)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	switch len(candidates) {
	case 0:
		fmt.Println("local time skipped by a gap")
	case 1:
		fmt.Println("unambiguous")
	default:
		fmt.Println("local time repeated by a fold")
	}
	for _, c := range candidates {
		fmt.Println("  possible:", c)
	}

	instant, err := zone.InstantFor(dt, policy, db)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	fmt.Printf("resolved (%s): %s\n", policy, instant)
}

// parseDateTime reads YYYY-MM-DD[THH:MM[:SS[.fraction]]].
func parseDateTime(s string) (iso.DateTime, error) {
	datePart, timePart, hasTime := strings.Cut(s, "T")
	if !hasTime {
		datePart, timePart, hasTime = strings.Cut(s, " ")
	}

	var y, mo, d int
	if _, err := fmt.Sscanf(datePart, "%d-%d-%d", &y, &mo, &d); err != nil {
		return iso.DateTime{}, fmt.Errorf("malformed date %q", datePart)
	}
	date, err := iso.NewDate(y, mo, d)
	if err != nil {
		return iso.DateTime{}, err
	}
	if !hasTime {
		return iso.DateTime{Date: date}, nil
	}

	timePart, frac, hasFrac := strings.Cut(timePart, ".")
	var h, mi, sec int
	switch strings.Count(timePart, ":") {
	case 1:
		if _, err := fmt.Sscanf(timePart, "%d:%d", &h, &mi); err != nil {
			return iso.DateTime{}, fmt.Errorf("malformed time %q", timePart)
		}
	case 2:
		if _, err := fmt.Sscanf(timePart, "%d:%d:%d", &h, &mi, &sec); err != nil {
			return iso.DateTime{}, fmt.Errorf("malformed time %q", timePart)
		}
	default:
		return iso.DateTime{}, fmt.Errorf("malformed time %q", timePart)
	}

	var ms, us, ns int
	if hasFrac {
		if len(frac) > 9 {
			return iso.DateTime{}, fmt.Errorf("fraction %q exceeds nine digits", frac)
		}
		n := 0
		for _, c := range []byte(frac) {
			if c < '0' || c > '9' {
				return iso.DateTime{}, fmt.Errorf("malformed fraction %q", frac)
			}
			n = n*10 + int(c-'0')
		}
		for i := len(frac); i < 9; i++ {
			n *= 10
		}
		ms, us, ns = n/1_000_000, n/1_000%1_000, n%1_000
	}
	tod, err := iso.NewTime(h, mi, sec, ms, us, ns)
	if err != nil {
		return iso.DateTime{}, err
	}
	return iso.DateTime{Date: date, Time: tod}, nil
}
