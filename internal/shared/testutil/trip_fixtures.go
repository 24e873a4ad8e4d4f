package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// ChicagoCSV is a small dataset carrying every optional column.
//
//	month       [1 1 3 6]      day_of_week [1 1 2 5]     hour [9 9 17 17]
//	start       [A A B A]      end         [B C B B]
//	duration    sum 600, mean 150
//	user type   Subscriber 3, Customer 1
//	gender      Male 2, Female 1, one empty
//	birth year  [1990 1985 null 1990]
const ChicagoCSV = `,Start Time,End Time,Trip Duration,Start Station,End Station,User Type,Gender,Birth Year
0,2017-01-02 09:07:57,2017-01-02 09:08:57,60,A,B,Subscriber,Male,1990.0
1,2017-01-02 09:30:00,2017-01-02 09:32:00,120,A,C,Subscriber,Female,1985.0
2,2017-03-07 17:15:00,2017-03-07 17:18:00,180,B,B,Customer,,
3,2017-06-30 17:45:00,2017-06-30 17:49:00,240,A,B,Subscriber,Male,1990.0
`

// NewYorkCityCSV shares the Chicago layout with different trips.
const NewYorkCityCSV = `,Start Time,End Time,Trip Duration,Start Station,End Station,User Type,Gender,Birth Year
0,2017-04-03 07:00:00,2017-04-03 07:10:00,600,Broadway,Wall St,Subscriber,Female,1970.0
1,2017-04-04 07:30:00,2017-04-04 07:40:00,600,Wall St,Broadway,Subscriber,Male,1980.0
2,2017-05-05 08:00:00,2017-05-05 08:05:00,300,Broadway,Wall St,Customer,,
`

// WashingtonCSV has no Gender or Birth Year column.
const WashingtonCSV = `,Start Time,End Time,Trip Duration,Start Station,End Station,User Type
0,2017-02-06 08:00:00,2017-02-06 08:05:00,300.5,X,Y,Subscriber
1,2017-02-07 08:10:00,2017-02-07 08:12:00,100,Y,X,Customer
`

// WriteDatasets writes the three city fixtures into dir and returns dir
func WriteDatasets(t *testing.T, dir string) string {
	t.Helper()

	WriteFile(t, filepath.Join(dir, "chicago.csv"), ChicagoCSV)
	WriteFile(t, filepath.Join(dir, "new_york_city.csv"), NewYorkCityCSV)
	WriteFile(t, filepath.Join(dir, "washington.csv"), WashingtonCSV)
	return dir
}

// DatasetDir creates a temp directory populated with the city fixtures
func DatasetDir(t *testing.T) string {
	t.Helper()
	return WriteDatasets(t, t.TempDir())
}

// WriteFile writes content to path, failing the test on error
func WriteFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create fixture directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write fixture %s: %v", path, err)
	}
}
