package dice

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
)

// RollResult holds the outcome of a single dice expression
type RollResult struct {
	Total    int
	Rolls    []int
	Bonus    int
	Count    int
	Sides    int
	RawTotal int // Total before the bonus
	IsCrit   bool
	IsFumble bool
}

// Roll rolls count dice with the given number of sides and adds a bonus
func Roll(count, sides, bonus int) (*RollResult, error) {
	if count < 1 {
		return nil, errors.New("invalid dice count")
	}

	if sides < 1 {
		return nil, errors.New("invalid dice size")
	}

	total := 0
	out := make([]int, count)
	for i := 0; i < count; i++ {
		roll := rand.Intn(sides) + 1
		total += roll
		out[i] = roll
	}

	result := &RollResult{
		Total:    total + bonus,
		Rolls:    out,
		Bonus:    bonus,
		Count:    count,
		Sides:    sides,
		RawTotal: total,
	}

	if count == 1 && sides == 20 {
		result.IsCrit = out[0] == 20
		result.IsFumble = out[0] == 1
	}

	return result, nil
}

// RollString rolls a dice expression like "2d6+1"
func RollString(diceString string) (*RollResult, error) {
	parts := strings.Split(diceString, "+")
	var dice = diceString
	var bonus int
	var err error
	if len(parts) == 2 {
		bonus, err = strconv.Atoi(parts[1])
		if err != nil {
			return nil, errors.New("invalid dice string")
		}
		dice = parts[0]
	}

	diceParts := strings.Split(dice, "d")
	if len(diceParts) != 2 {
		return nil, errors.New("invalid dice string")
	}

	count, err := strconv.Atoi(diceParts[0])
	if err != nil {
		return nil, errors.New("invalid dice string")
	}
	sides, err := strconv.Atoi(diceParts[1])
	if err != nil {
		return nil, errors.New("invalid dice string")
	}

	return Roll(count, sides, bonus)
}

func (r *RollResult) String() string {
	compact := strings.ReplaceAll(fmt.Sprintf("%v", r.Rolls), " ", "")
	return fmt.Sprintf("%d : %s", r.Total, compact)
}
