package timezone

import (
	"time"
	_ "time/tzdata"
)

// Name is the timezone digests are scheduled and stamped in.
const Name = "Asia/Shanghai"

var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation(Name)
	if err != nil {
		panic(err)
	}
}

// Load resolves name, an empty name resolves to Location.
func Load(name string) (*time.Location, error) {
	if name == "" {
		return Location, nil
	}
	return time.LoadLocation(name)
}

// force timezone to be in Shanghai so that subjects and schedules do not
// drift when the host runs in another timezone
func Now() time.Time {
	return time.Now().In(Location)
}
