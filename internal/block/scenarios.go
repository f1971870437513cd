package block

// Canned scenario documents for workbench use, mirroring the authoring
// format the scenario package parses.

type WorkbenchScenario struct {
	Title string
	XML   string
}

func WorkbenchScenarios() []WorkbenchScenario {
	return []WorkbenchScenario{
		{Title: "Open Assessment Poverty Rubric", XML: povertyRubricScenario},
		{Title: "Open Assessment Censorship Rubric", XML: censorshipRubricScenario},
	}
}

const povertyRubricScenario = `<openassessment course_id="TestCourse">
  <title>Global Poverty</title>
  <prompt>Given the state of the world today, what do you think should be done to combat poverty? Please answer in a short essay of 200-300 words.</prompt>
  <rubric>
    <instructions>Read for conciseness, clarity of thought, and form.</instructions>
    <criterion name="concise" instructions="How concise is it?" total_value="5">
      <option points="0" label="The Bible">Way too long.</option>
      <option points="3" label="Gettysburg Address">Just long enough.</option>
      <option points="5" label="Tweet">Short and sweet.</option>
    </criterion>
    <criterion name="clearheaded" instructions="How clear is the thinking?" total_value="5">
      <option points="0" label="Eric">Very confused.</option>
      <option points="5" label="Spock">Very logical.</option>
    </criterion>
  </rubric>
  <peer-assessment must_grade="5" must_be_graded_by="3"/>
  <self-assessment/>
</openassessment>`

const censorshipRubricScenario = `<openassessment course_id="TestCourse">
  <title>Censorship in Libraries</title>
  <rubric>
    <instructions>Read for conciseness, clarity of thought, and form.</instructions>
    <criterion name="Ideas" instructions="Determine if there is a unifying theme or main idea." total_value="5">
      <option points="0" label="Poor">Difficult for the reader to discern the main idea.</option>
      <option points="3" label="Fair">Presents a unifying theme or main idea, but may include minor tangents.</option>
      <option points="5" label="Good">Presents a unifying theme or main idea without going off on tangents.</option>
    </criterion>
  </rubric>
  <peer-assessment must_grade="5" must_be_graded_by="3"/>
</openassessment>`
