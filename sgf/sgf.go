/*
 * sgf.go, part of gridFit.
 *
 * Copyright 2024 Raul Mera <rmera{at}usachDOTcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 * gridFit is currently developed at the Universidad de Santiago de Chile
 * (USACH)
 *
 */

/*Package sgf implements the "simple grid format": a zstd-compressed text
format for sequences of density-grid snapshots sharing one geometry. A file
starts with optional key=value metadata lines and a geometry line, and each
snapshot is a block of value lines closed by a '*' line, so intermediate
grids of a fitting run can be dumped and replayed.*/
package sgf

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/rmera/gridfit"
)

//Write!
type SgfW struct {
	f          *os.File
	h          io.WriteCloser
	filename   string
	writeable  bool
	channels   int
	side       int
	resolution float64
	center     [3]float64
}

//Close flushes and closes the file. The handle can not be written after
//this call.
func (S *SgfW) Close() {
	if S == nil {
		return
	}
	if S.writeable {
		S.h.Close()
		S.f.Close()
	}
	S.writeable = false
}

//NewWriter creates an sgf file with the given grid geometry, writing the
//given metadata (if any) before the geometry line. Every snapshot written
//to the handle must match the geometry.
func NewWriter(name string, channels, side int, resolution float64, center [3]float64, header map[string]string) (*SgfW, error) {
	S := new(SgfW)
	var err error
	S.f, err = os.Create(name)
	if err != nil {
		return nil, err
	}
	S.h, err = zstd.NewWriter(S.f, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return nil, Error{"Can't write header " + err.Error(), name, []string{"NewWriter"}, true}
	}
	S.filename = name
	S.channels = channels
	S.side = side
	S.resolution = resolution
	S.center = center
	S.writeable = true
	if header != nil {
		headerstr := ""
		for k, v := range header {
			headerstr += fmt.Sprintf("%s=%v\n", k, v)
		}
		S.h.Write([]byte(headerstr))
	}
	S.h.Write([]byte(fmt.Sprintf("** %d %d %g %g %g %g\n", channels, side, resolution, center[0], center[1], center[2])))
	return S, nil
}

//WNext writes the given grid as the next snapshot in the file. The grid
//must match the geometry the handle was created with.
func (S *SgfW) WNext(g *gridfit.Grid) error {
	if !S.writeable {
		return Error{SnapUnIniWrite, S.filename, []string{"WNext"}, true}
	}
	if g == nil {
		return Error{NilGrid, S.filename, []string{"WNext"}, true}
	}
	if g.Channels() != S.channels || g.Side() != S.side {
		return Error{fmt.Sprintf("%dx%d^3 grid given, but %dx%d^3 expected", g.Channels(), g.Side(), S.channels, S.side), S.filename, []string{"WNext"}, true}
	}
	data := g.Data()
	side := S.side
	b := new(strings.Builder)
	for i := 0; i < len(data); i += side {
		for j, v := range data[i : i+side] {
			if j > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		}
		b.WriteByte('\n')
	}
	b.WriteString("*\n")
	_, err := S.h.Write([]byte(b.String()))
	if err != nil {
		return Error{err.Error(), S.filename, []string{"WNext"}, true}
	}
	return nil
}

//Read!
type SgfR struct {
	f            *os.File
	z            *zstd.Decoder
	h            *bufio.Reader
	filename     string
	readable     bool
	channels     int
	side         int
	resolution   float64
	center       [3]float64
}

//New opens an sgf file for reading and returns a pointer to the handle, a
//map with the metadata (or nil, if no metadata is found) and error or nil.
func New(name string) (*SgfR, map[string]string, error) {
	S := new(SgfR)
	S.channels = -1 //just so we know if things don't work
	var m map[string]string
	var err error
	S.filename = name
	S.f, err = os.Open(S.filename)
	if err != nil {
		return nil, nil, err
	}
	S.z, err = zstd.NewReader(bufio.NewReader(S.f))
	if err != nil {
		return nil, nil, Error{"Can't read header " + err.Error(), S.filename, []string{"New"}, true}
	}
	S.h = bufio.NewReader(S.z)
	for {
		str, err := S.h.ReadString('\n')
		if err != nil {
			return nil, nil, Error{"Can't read header " + err.Error(), S.filename, []string{"New"}, true}
		}
		str = strings.TrimSuffix(str, "\n")
		if strings.HasPrefix(str, "**") {
			fields := strings.Fields(str)
			if len(fields) != 7 {
				return nil, nil, Error{fmt.Sprintf("Can't read grid geometry from '%s'", str), S.filename, []string{"New"}, true}
			}
			S.channels, err = strconv.Atoi(fields[1])
			if err == nil {
				S.side, err = strconv.Atoi(fields[2])
			}
			if err == nil {
				S.resolution, err = strconv.ParseFloat(fields[3], 64)
			}
			for i := 0; i < 3 && err == nil; i++ {
				S.center[i], err = strconv.ParseFloat(fields[4+i], 64)
			}
			if err != nil {
				return nil, nil, Error{fmt.Sprintf("Can't read grid geometry from '%s': %s", str, err.Error()), S.filename, []string{"New"}, true}
			}
			break
		}
		kv := strings.SplitN(str, "=", 2)
		if len(kv) != 2 {
			return nil, nil, Error{"Malformed header line " + str, S.filename, []string{"New"}, true}
		}
		if m == nil {
			m = map[string]string{}
		}
		m[kv[0]] = kv[1]
	}
	S.readable = true
	return S, m, nil
}

//Readable returns true if the handle is readable (if it is possible to
//call Next on it).
func (S *SgfR) Readable() bool { return S.readable }

//Channels returns the number of channels per snapshot.
func (S *SgfR) Channels() int { return S.channels }

//Side returns the number of voxels per cube axis.
func (S *SgfR) Side() int { return S.side }

//Resolution returns the grid spacing, in the file's length units.
func (S *SgfR) Resolution() float64 { return S.resolution }

//Center returns the Cartesian center of the grids in the file.
func (S *SgfR) Center() [3]float64 { return S.center }

//Close closes the handle. It can not be read after this call.
func (S *SgfR) Close() {
	if S == nil || !S.readable {
		return
	}
	S.z.Close()
	S.f.Close()
	S.readable = false
}

//Next reads the next snapshot in the file and returns it as a grid with
//the given channel semantics (t can be nil). If the returned error
//implements gridfit.LastSnapshotError the file simply ended, and nothing
//bad happened.
func (S *SgfR) Next(t gridfit.Typer) (*gridfit.Grid, error) {
	if !S.readable {
		return nil, Error{SnapUnIniRead, S.filename, []string{"Next"}, true}
	}
	side := S.side
	total := S.channels * side * side * side
	data := make([]float64, 0, total)
	for len(data) < total {
		str, err := S.h.ReadString('\n')
		if err != nil {
			if err == io.EOF && len(data) == 0 && strings.TrimSpace(str) == "" {
				//nothing bad happened here, the file just ended.
				S.Close()
				return nil, newLastSnapshotError(S.filename, "Next")
			}
			return nil, Error{err.Error(), S.filename, []string{"Next"}, true}
		}
		for _, field := range strings.Fields(str) {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, Error{fmt.Sprintf("Can't parse grid value '%s': %s", field, err.Error()), S.filename, []string{"Next"}, true}
			}
			data = append(data, v)
		}
		if len(data) > total {
			return nil, Error{"Snapshot carries more values than its geometry allows", S.filename, []string{"Next"}, true}
		}
	}
	str, err := S.h.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, Error{err.Error(), S.filename, []string{"Next"}, true}
	}
	if strings.TrimSpace(str) != "*" {
		return nil, Error{"Snapshot not closed by a '*' line", S.filename, []string{"Next"}, true}
	}
	g, err := gridfit.NewGrid(data, S.channels, side, S.resolution, S.center, t)
	if err != nil {
		return nil, errDecorate(err, "Next")
	}
	return g, nil
}
