package s0

import (
	"strings"

	"github.com/cedendahlkim/cascade-core/internal/task"
)

// descContains is the shared predicate helper: case-insensitive
// substring match against a task's title+description, the same signal
// code_solver.py's matchers key off of.
func descContains(t *task.Task, needles ...string) bool {
	hay := strings.ToLower(t.Title + " " + t.Description)
	for _, n := range needles {
		if strings.Contains(hay, strings.ToLower(n)) {
			return true
		}
	}
	return false
}

// matchTwoSum recognizes spec.md §8 scenario 1: "read N, then N
// integers, then target; print two indices that sum to target".
func matchTwoSum(t *task.Task) (string, bool) {
	if !descContains(t, "two indices", "two numbers", "sum to target", "two-sum", "two sum") {
		return "", false
	}
	return `n = int(input())
nums = [int(input()) for _ in range(n)]
target = int(input())
seen = {}
result = None
for i, v in enumerate(nums):
    complement = target - v
    if complement in seen:
        result = (seen[complement], i)
        break
    seen[v] = i
if result:
    print(result[0], result[1])
else:
    print(-1)
`, true
}

// matchBalancedBrackets recognizes spec.md §8 scenario 2.
func matchBalancedBrackets(t *task.Task) (string, bool) {
	if !descContains(t, "balanced", "bracket", "parenthes") {
		return "", false
	}
	return `s = input().strip()
pairs = {')': '(', ']': '[', '}': '{'}
stack = []
ok = True
for ch in s:
    if ch in '([{':
        stack.append(ch)
    elif ch in pairs:
        if not stack or stack.pop() != pairs[ch]:
            ok = False
            break
print("yes" if ok and not stack else "no")
`, true
}

func matchArithmetic(t *task.Task) (string, bool) {
	if !descContains(t, "sum of", "average of", "total of the", "add all") {
		return "", false
	}
	return `n = int(input())
nums = [int(input()) for _ in range(n)]
print(sum(nums))
`, true
}

func matchStringReverse(t *task.Task) (string, bool) {
	if !descContains(t, "reverse the string", "reverse string", "reverse the input") {
		return "", false
	}
	return `s = input()
print(s[::-1])
`, true
}

func matchStringCase(t *task.Task) (string, bool) {
	upper := descContains(t, "uppercase", "upper case", "to upper")
	lower := descContains(t, "lowercase", "lower case", "to lower")
	if !upper && !lower {
		return "", false
	}
	if upper {
		return `s = input()
print(s.upper())
`, true
	}
	return `s = input()
print(s.lower())
`, true
}

func matchRunningSum(t *task.Task) (string, bool) {
	if !descContains(t, "running sum", "prefix sum") {
		return "", false
	}
	return `n = int(input())
nums = [int(input()) for _ in range(n)]
total = 0
out = []
for v in nums:
    total += v
    out.append(str(total))
print(' '.join(out))
`, true
}

func matchRemoveDuplicates(t *task.Task) (string, bool) {
	if !descContains(t, "remove duplicate", "unique elements", "dedupe") {
		return "", false
	}
	return `n = int(input())
nums = [int(input()) for _ in range(n)]
seen = set()
out = []
for v in nums:
    if v not in seen:
        seen.add(v)
        out.append(str(v))
print(' '.join(out))
`, true
}

func matchFizzBuzz(t *task.Task) (string, bool) {
	if !descContains(t, "fizzbuzz", "fizz buzz") {
		return "", false
	}
	return `n = int(input())
for i in range(1, n + 1):
    if i % 15 == 0:
        print("FizzBuzz")
    elif i % 3 == 0:
        print("Fizz")
    elif i % 5 == 0:
        print("Buzz")
    else:
        print(i)
`, true
}

func matchMaxSubarray(t *task.Task) (string, bool) {
	if !descContains(t, "maximum subarray", "largest sum contiguous", "kadane") {
		return "", false
	}
	return `n = int(input())
nums = [int(input()) for _ in range(n)]
best = nums[0]
cur = nums[0]
for v in nums[1:]:
    cur = max(v, cur + v)
    best = max(best, cur)
print(best)
`, true
}

func matchGCDLCM(t *task.Task) (string, bool) {
	if !descContains(t, "greatest common divisor", "gcd", "lcm", "least common multiple") {
		return "", false
	}
	return `import math
a = int(input())
b = int(input())
g = math.gcd(a, b)
l = a * b // g if g else 0
print(g, l)
`, true
}

func matchPalindrome(t *task.Task) (string, bool) {
	if !descContains(t, "palindrome") {
		return "", false
	}
	return `s = input().strip()
print("yes" if s == s[::-1] else "no")
`, true
}

func matchWordCount(t *task.Task) (string, bool) {
	if !descContains(t, "count words", "word count", "number of words") {
		return "", false
	}
	return `line = input()
print(len(line.split()))
`, true
}
